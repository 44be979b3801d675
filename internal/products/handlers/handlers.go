package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/products"
	"github.com/shikhasoumya1612/ecommerce/middleware"
)

type Handler struct {
	p        *products.Conf
	validate *validator.Validate
}

func NewHandler(p *products.Conf) *Handler {
	return &Handler{
		p:        p,
		validate: validator.New(),
	}
}

func API(endpointPrefix string, p *products.Conf, a *auth.Keys) *gin.Engine {
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
	h := NewHandler(p)

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	// Catalog reads and the quantity endpoints stay open: the cart and order
	// services call them without a user token.
	open := r.Group(endpointPrefix)
	{
		open.GET("/products", h.ListProducts)
		open.GET("/products/:productId", h.GetProductByID)
		open.GET("/products/:productId/detailsForOrder", h.GetDetailsForOrder)
		open.GET("/products/:productId/quantity", h.GetQuantity)
		open.POST("/products/:productId/updateQuantity", h.UpdateQuantity)
		open.GET("/products/category/:categoryId", h.ListProductsByCategory)
		open.GET("/categories", h.ListCategories)
		open.GET("/category/:categoryId", h.GetCategoryByID)
	}

	authed := r.Group(endpointPrefix)
	authed.Use(m.Authentication())
	{
		authed.POST("/product/:id", m.Authorize(h.AddProduct, auth.RoleAdmin))
		authed.PATCH("/product/:id", m.Authorize(h.UpdateProduct, auth.RoleAdmin))
		authed.DELETE("/product/:id", m.Authorize(h.DeleteProduct, auth.RoleAdmin))
		authed.POST("/product/:id/review", h.AddReview)

		authed.POST("/category", m.Authorize(h.AddCategory, auth.RoleAdmin))
		authed.PATCH("/category/:categoryId", m.Authorize(h.UpdateCategory, auth.RoleAdmin))
		authed.DELETE("/category/:categoryId", m.Authorize(h.DeleteCategory, auth.RoleAdmin))
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func claimsOf(c *gin.Context) (auth.Claims, bool) {
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	return claims, ok
}
