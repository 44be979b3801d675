package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/orders"
	"github.com/shikhasoumya1612/ecommerce/internal/stores/kafka"
	"github.com/shikhasoumya1612/ecommerce/middleware"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

type Handler struct {
	placer   *orders.Placer
	validate *validator.Validate
	k        *kafka.Conf
}

func NewHandler(placer *orders.Placer, k *kafka.Conf) *Handler {
	return &Handler{
		placer:   placer,
		validate: validator.New(),
		k:        k,
	}
}

func API(endpointPrefix string, placer *orders.Placer, k *kafka.Conf, a *auth.Keys) *gin.Engine {
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
	h := NewHandler(placer, k)

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	authed := r.Group(endpointPrefix)
	authed.Use(m.Authentication())
	{
		authed.POST("/createOrder", h.CreateOrder)
		authed.GET("/all", h.GetAllOrders)
		authed.GET("/:orderId", h.GetOrderByID)
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

func (h *Handler) CreateOrder(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	var req orders.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid order body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	for _, item := range req.OrderItemList {
		if err := h.validate.Struct(item); err != nil {
			slog.Error("order item validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
			apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
			return
		}
	}

	order, err := h.placer.PlaceOrder(ctx, userID, req)
	if err != nil {
		slog.Error("placing order", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}

	go h.publishOrderPlaced(order)

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully"})
}

func (h *Handler) publishOrderPlaced(order orders.Order) {
	event := kafka.OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		CreatedAt:  time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshalling order placed event", slog.String(logkey.ERROR, err.Error()))
		return
	}
	key := []byte(strconv.Itoa(order.ID))
	if err := h.k.ProduceMessage(kafka.TopicOrderPlaced, key, data); err != nil {
		slog.Error("publishing order placed event", slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, order.UserID))
	}
}

func (h *Handler) GetAllOrders(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	list, err := h.placer.AllOrders(ctx, userID)
	if err != nil {
		slog.Error("listing orders", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders fetched successfully",
		"orders":  list,
	})
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	userID, ok := callerID(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid order id"))
		return
	}

	order, err := h.placer.OrderByID(ctx, userID, orderID)
	if err != nil {
		slog.Error("fetching order", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders fetched successfully",
		"order":   order,
	})
}
