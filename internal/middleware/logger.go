package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"gutvbooker/internal/logger"
	"gutvbooker/internal/pkg/response"
)

// RequestLogger logs one line per request and recovers from panics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					"error", fmt.Sprintf("%v", recovered),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			status := c.Writer.Status()
			args := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"client_ip", c.ClientIP(),
				"user_id", c.GetInt64(CtxUserID),
			}
			for _, e := range c.Errors {
				args = append(args, "error", e.Error())
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.ErrorContext(c.Request.Context(), "request failed", args...)
			case status >= http.StatusBadRequest:
				logger.WarnContext(c.Request.Context(), "request rejected", args...)
			default:
				logger.InfoContext(c.Request.Context(), "request handled", args...)
			}
		}()

		c.Next()
	}
}
