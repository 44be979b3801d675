package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDKey is the gin context key under which the per-request trace id is
// stored by middleware.Logger.
const TraceIDKey = "trace_id"

// GetTraceIdOfRequest returns the trace id assigned to the request, generating
// one on the spot if the logger middleware did not run (e.g. in tests).
func GetTraceIdOfRequest(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if traceId, ok := v.(string); ok {
			return traceId
		}
	}
	return uuid.NewString()
}
