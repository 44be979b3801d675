package handlers

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/cart"
	"github.com/shikhasoumya1612/ecommerce/middleware"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

type Handler struct {
	s        *cart.Service
	validate *validator.Validate
}

func NewHandler(s *cart.Service) *Handler {
	return &Handler{
		s:        s,
		validate: validator.New(),
	}
}

func API(endpointPrefix string, s *cart.Service, a *auth.Keys) *gin.Engine {
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
	h := NewHandler(s)

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	authed := r.Group(endpointPrefix)
	authed.Use(m.Authentication())
	{
		authed.POST("/addToCart", h.AddToCart)
		authed.GET("", h.FetchCart)
		authed.POST("/removeFromCart", h.RemoveFromCart)
		authed.GET("/clearCart", h.ClearCart)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func callerID(c *gin.Context) (int, bool) {
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	if !ok {
		return 0, false
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (h *Handler) AddToCart(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	var body cart.CartItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Error("invalid cart body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		slog.Error("cart validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	if err := h.s.AddToCart(ctx, userID, body); err != nil {
		slog.Error("adding to cart", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully"})
}

func (h *Handler) FetchCart(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	userCart, err := h.s.FetchCart(ctx, userID)
	if err != nil {
		slog.Error("fetching cart", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart fetched successfully",
		"cart":    userCart,
	})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	var body cart.CartItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Error("invalid cart body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	if err := h.s.RemoveFromCart(ctx, userID, body); err != nil {
		slog.Error("removing from cart", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart successfully"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	if err := h.s.ClearCart(ctx, userID); err != nil {
		slog.Error("clearing cart", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}
