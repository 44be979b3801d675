// Package middleware carries the gin middleware shared by every service:
// request logging with trace ids, token authentication, and role checks.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shikhasoumya1612/ecommerce/internal/auth"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

type Mid struct {
	keys *auth.Keys
}

func NewMid(keys *auth.Keys) (*Mid, error) {
	if keys == nil {
		return nil, apperr.New(apperr.Internal, "auth keys not provided")
	}
	return &Mid{keys: keys}, nil
}

// Authentication extracts the bearer token, verifies it, and stores the claims
// in the request context for the handlers downstream.
func (m *Mid) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		authHeader := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			slog.Error("authentication token not found in header", slog.String(logkey.TraceID, traceId))
			apperr.Respond(c, apperr.New(apperr.Unauthenticated, "Authentication token not found in header."))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.keys.VerifyToken(token)
		if err != nil {
			slog.Error("invalid authentication token", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			apperr.Respond(c, err)
			return
		}

		ctx := context.WithValue(c.Request.Context(), auth.ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize wraps a handler so it only runs for the given roles.
func (m *Mid) Authorize(next gin.HandlerFunc, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
		if !ok {
			slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
			apperr.Respond(c, apperr.New(apperr.Unauthenticated, http.StatusText(http.StatusUnauthorized)))
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				next(c)
				return
			}
		}

		slog.Error("role not permitted", slog.String(logkey.TraceID, traceId), slog.String("Role", claims.Role))
		apperr.Respond(c, apperr.New(apperr.Unauthorized, "Authentication Error : Cannot be accessed"))
	}
}
