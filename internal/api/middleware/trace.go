package middleware

import (
	"Inkwell/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	TraceHeader     = "X-Trace-ID"
	maxTraceIDBytes = 64
)

// TraceMiddleware 为每个请求分配 trace id. A client-supplied X-Trace-ID is kept
// when it is short enough to log, otherwise a new id is generated.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" || len(traceID) > maxTraceIDBytes {
			traceID = logger.NewTraceID("")
		}

		c.Set(logger.TraceIDAttr, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
