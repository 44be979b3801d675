package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/users"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

func (h *Handler) ListAddresses(c *gin.Context) {
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

	addresses, err := h.u.AddressesForUser(ctx, userID)
	if err != nil {
		slog.Error("listing addresses", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *Handler) CreateAddress(c *gin.Context) {
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

	var newAddress users.NewAddress
	if err := c.ShouldBindJSON(&newAddress); err != nil {
		slog.Error("invalid address body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newAddress); err != nil {
		slog.Error("address validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	address, err := h.u.InsertAddress(ctx, userID, newAddress)
	if err != nil {
		slog.Error("inserting address", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address added successfully",
		"address": address,
	})
}

// DeleteAddress removes one of the caller's own addresses; ids belonging to
// another user read as not found.
func (h *Handler) DeleteAddress(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid address id"))
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

	address, err := h.u.AddressByID(ctx, addressID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if address.UserID != userID {
		apperr.Respond(c, apperr.New(apperr.NotFound, "Address not found"))
		return
	}

	if err := h.u.DeleteAddress(ctx, addressID); err != nil {
		slog.Error("deleting address", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

func (h *Handler) GetAddressByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid address id"))
		return
	}

	address, err := h.u.AddressByID(ctx, addressID)
	if err != nil {
		slog.Error("fetching address", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// GetAddressString serves the snapshot rendering the order service stores on
// placed orders.
func (h *Handler) GetAddressString(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	addressID, err := strconv.Atoi(c.Param("addressId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid address id"))
		return
	}

	address, err := h.u.AddressByID(ctx, addressID)
	if err != nil {
		slog.Error("fetching address string", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addressDetails": address.DetailString()})
}
