package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/users"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

func (h *Handler) ListPaymentMethods(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	claims, ok := claimsOf(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	paymentMethods, err := h.u.PaymentMethodsForUser(ctx, userID)
	if err != nil {
		slog.Error("listing payment methods", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentMethods)
}

func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	claims, ok := claimsOf(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	var newPaymentMethod users.NewPaymentMethod
	if err := c.ShouldBindJSON(&newPaymentMethod); err != nil {
		slog.Error("invalid payment method body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newPaymentMethod); err != nil {
		slog.Error("payment method validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	paymentMethod, err := h.u.InsertPaymentMethod(ctx, userID, newPaymentMethod)
	if err != nil {
		slog.Error("inserting payment method", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Payment method added successfully",
		"paymentMethod": paymentMethod,
	})
}

// DeletePaymentMethod removes one of the caller's own payment methods.
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	paymentMethodID, err := strconv.Atoi(c.Param("paymentMethodId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid payment method id"))
		return
	}

	claims, ok := claimsOf(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}

	paymentMethod, err := h.u.PaymentMethodByID(ctx, paymentMethodID)
	if err != nil || paymentMethod.UserID != userID {
		apperr.Respond(c, apperr.New(apperr.NotFound,
			fmt.Sprintf("No payment method exists with the id : %d", paymentMethodID)))
		return
	}

	if err := h.u.DeletePaymentMethod(ctx, paymentMethodID); err != nil {
		slog.Error("deleting payment method", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}

func (h *Handler) GetPaymentMethodByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	paymentMethodID, err := strconv.Atoi(c.Param("paymentMethodId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid payment method id"))
		return
	}

	paymentMethod, err := h.u.PaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		slog.Error("fetching payment method", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentMethod)
}

// GetPaymentMethodString serves the masked snapshot rendering stored on placed
// orders.
func (h *Handler) GetPaymentMethodString(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	paymentMethodID, err := strconv.Atoi(c.Param("paymentMethodId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid payment method id"))
		return
	}

	paymentMethod, err := h.u.PaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		slog.Error("fetching payment method string", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentDetails": paymentMethod.DetailString()})
}
