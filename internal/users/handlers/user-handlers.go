package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/internal/stores/kafka"
	"github.com/shikhasoumya1612/ecommerce/internal/users"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

func (h *Handler) Register(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var newUser users.NewUser
	if err := c.ShouldBindJSON(&newUser); err != nil {
		slog.Error("invalid register body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(newUser); err != nil {
		slog.Error("register validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	user, err := h.u.InsertUser(ctx, newUser)
	if err != nil {
		slog.Error("registering user", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	go h.publishAccountCreated(user)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *Handler) publishAccountCreated(user users.User) {
	event := kafka.AccountCreatedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshalling account created event", slog.String(logkey.ERROR, err.Error()))
		return
	}
	key := []byte(strconv.Itoa(user.ID))
	if err := h.k.ProduceMessage(kafka.TopicAccountCreated, key, data); err != nil {
		slog.Error("publishing account created event", slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, user.ID))
	}
}

func (h *Handler) Login(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	var req users.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid login body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		slog.Error("login validation failed", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "please provide values in correct format"))
		return
	}

	user, err := h.u.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		slog.Error("authenticating user", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	token, err := h.authKeys.GenerateToken(user.ID, user.Role, user.Name)
	if err != nil {
		slog.Error("generating token", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"token":   token,
		"user":    user,
	})
}

// MyData returns the caller's own account, addresses and payment methods
// included.
func (h *Handler) MyData(c *gin.Context) {
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

	user, err := h.u.UserByID(ctx, userID)
	if err != nil {
		slog.Error("fetching own user data", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers is admin only and returns every customer account.
func (h *Handler) ListUsers(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	list, err := h.u.AllCustomers(ctx)
	if err != nil {
		slog.Error("listing users", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	if list == nil {
		list = []users.User{}
	}
	c.JSON(http.StatusOK, list)
}

// GetUserByID serves a single user. Customers may only look up themselves;
// admins may look up anyone.
func (h *Handler) GetUserByID(c *gin.Context) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	targetID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid user id"))
		return
	}

	claims, ok := claimsOf(c)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	callerID, err := claims.UserID()
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Invalid or expired token"))
		return
	}
	if claims.Role != auth.RoleAdmin && callerID != targetID {
		apperr.Respond(c, apperr.New(apperr.Unauthorized, "Authentication Error : Cannot be accessed"))
		return
	}

	user, err := h.u.UserByID(ctx, targetID)
	if err != nil {
		slog.Error("fetching user", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// decodeUpdate parses the typed patch body. Unknown keys are rejected rather
// than silently dropped.
func decodeUpdate(c *gin.Context) (users.UpdateUser, error) {
	var patch users.UpdateUser
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return users.UpdateUser{}, apperr.New(apperr.InvalidInput, "Unknown fields sent to update")
		}
		return users.UpdateUser{}, apperr.New(apperr.InvalidInput, "please provide values in correct format")
	}
	return patch, nil
}

func (h *Handler) UpdateMyData(c *gin.Context) {
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
	h.updateUser(c, userID)
}

func (h *Handler) UpdateUserByID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid user id"))
		return
	}
	h.updateUser(c, userID)
}

func (h *Handler) updateUser(c *gin.Context, userID int) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	patch, err := decodeUpdate(c)
	if err != nil {
		slog.Error("invalid update body", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()))
		apperr.Respond(c, err)
		return
	}

	user, err := h.u.UpdateUser(ctx, userID, patch)
	if err != nil {
		slog.Error("updating user", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *Handler) DeleteMyAccount(c *gin.Context) {
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
	h.deleteUser(c, userID)
}

func (h *Handler) DeleteUserByID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.InvalidInput, "Invalid user id"))
		return
	}
	h.deleteUser(c, userID)
}

func (h *Handler) deleteUser(c *gin.Context, userID int) {
	traceID := ctxmanage.GetTraceIdOfRequest(c)
	ctx := c.Request.Context()

	if err := h.u.DeleteUser(ctx, userID); err != nil {
		slog.Error("deleting user", slog.String(logkey.TraceID, traceID), slog.String(logkey.ERROR, err.Error()),
			slog.Int(logkey.UserID, userID))
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
