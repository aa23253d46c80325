// internal/middleware/recovery.go
package middleware

import (
	"net/http"

	"flota-service/internal/pkg/response"
	xerrors "flota-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts panics into 500 responses and logs the stack.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", c.GetString("request_id")),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				response.Error(c, http.StatusInternalServerError, "Internal server error", xerrors.ErrInternal)
			}
		}()
		c.Next()
	}
}
