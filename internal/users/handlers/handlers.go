package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/stores/kafka"
	"github.com/shikhasoumya1612/ecommerce/internal/users"
	"github.com/shikhasoumya1612/ecommerce/middleware"
)

type Handler struct {
	u        *users.Conf
	validate *validator.Validate
	k        *kafka.Conf
	authKeys *auth.Keys
}

func NewHandler(u *users.Conf, k *kafka.Conf, authKeys *auth.Keys) *Handler {
	return &Handler{
		u:        u,
		k:        k,
		validate: validator.New(),
		authKeys: authKeys,
	}
}

func API(endpointPrefix string, u *users.Conf, k *kafka.Conf, a *auth.Keys) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	m, err := middleware.NewMid(a)
	if err != nil {
		panic(err)
	}
	h := NewHandler(u, k, a)

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	v1 := r.Group(endpointPrefix)
	{
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// Detail lookups used by the order service; no user token involved.
		v1.GET("/addresses/:addressId", h.GetAddressByID)
		v1.GET("/addresses/:addressId/string", h.GetAddressString)
		v1.GET("/paymentMethods/:paymentMethodId", h.GetPaymentMethodByID)
		v1.GET("/paymentMethods/:paymentMethodId/string", h.GetPaymentMethodString)
	}

	authed := r.Group(endpointPrefix)
	authed.Use(m.Authentication())
	{
		authed.GET("", m.Authorize(h.ListUsers, auth.RoleAdmin))
		authed.GET("/my-data", h.MyData)
		authed.GET("/:userId", h.GetUserByID)
		authed.PATCH("", h.UpdateMyData)
		authed.PATCH("/:userId", m.Authorize(h.UpdateUserByID, auth.RoleAdmin))
		authed.DELETE("", h.DeleteMyAccount)
		authed.DELETE("/:userId", m.Authorize(h.DeleteUserByID, auth.RoleAdmin))

		authed.GET("/addresses", h.ListAddresses)
		authed.POST("/addresses", h.CreateAddress)
		authed.DELETE("/addresses/:addressId", h.DeleteAddress)

		authed.GET("/paymentMethods", h.ListPaymentMethods)
		authed.POST("/paymentMethods", h.CreatePaymentMethod)
		authed.DELETE("/paymentMethods/:paymentMethodId", h.DeletePaymentMethod)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// claimsOf pulls the verified claims the authentication middleware stored on
// the request.
func claimsOf(c *gin.Context) (auth.Claims, bool) {
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	return claims, ok
}
