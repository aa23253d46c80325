// internal/middleware/auth.go
package middleware

import (
	"strings"

	"flota-service/internal/domain/driver"
	"flota-service/internal/pkg/response"
	authsvc "flota-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and its backing session, then stores the
// claims on the context for handlers.
func Auth(svc *authsvc.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header")
			return
		}

		claims, err := svc.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("claims", claims)
		c.Set("identity_id", claims.IdentityID)
		c.Set("rol", claims.Rol)
		c.Next()
	}
}

// AdminOnly allows only ADMIN identities through. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		rol := c.GetString("rol")
		if driver.NormalizeRole(rol) != driver.RoleAdmin {
			response.Forbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}
