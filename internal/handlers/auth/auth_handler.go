// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	authsvc "flota-service/internal/service/auth"

	"flota-service/internal/pkg/jwt"
	"flota-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *authsvc.AuthService
}

func NewAuthHandler(svc *authsvc.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authsvc.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		response.FromError(c, err, "Login failed")
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Logout handles POST /auth/logout. Requires a valid token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		response.FromError(c, err, "Logout failed")
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me handles GET /auth/me and returns the authenticated identity.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		response.Unauthorized(c, "Missing authentication")
		return
	}

	response.Success(c, http.StatusOK, "Authenticated", gin.H{
		"identity_id": claims.IdentityID,
		"rol":         claims.Rol,
		"expires_at":  claims.ExpiresAt,
	})
}

func claimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
