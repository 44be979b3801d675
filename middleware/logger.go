package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shikhasoumya1612/ecommerce/pkg/ctxmanage"
	"github.com/shikhasoumya1612/ecommerce/pkg/logkey"
)

// Logger assigns every request a trace id and logs the request line once the
// handler chain finishes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := uuid.NewString()
		c.Set(ctxmanage.TraceIDKey, traceId)
		c.Writer.Header().Set("X-Trace-Id", traceId)

		start := time.Now()
		c.Next()

		slog.Info("request completed",
			slog.String(logkey.TraceID, traceId),
			slog.String(logkey.Method, c.Request.Method),
			slog.String(logkey.URL, c.Request.URL.Path),
			slog.Int(logkey.Status, c.Writer.Status()),
			slog.Duration("Latency", time.Since(start)),
		)
	}
}
