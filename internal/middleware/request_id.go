package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gutvbooker/internal/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestID    = "request_id"
)

// RequestID propagates the caller's X-Request-ID or generates one, and puts a
// request-scoped logger into the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)

		ctx := logger.ContextWithLogger(c.Request.Context(), logger.Get().With("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
