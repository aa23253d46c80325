// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flota-service/internal/domain/driver"
	xerrors "flota-service/internal/pkg/errors"
	"flota-service/internal/pkg/jwt"
	"flota-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Correo string `json:"correo" binding:"required,email"`
	PIN    string `json:"pin" binding:"required"`
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      driver.DriverInfo `json:"user"`
}

type AuthService struct {
	driverRepo  driver.Repository
	jwtManager  *jwt.Manager
	sessions    *session.Manager
	rateLimiter *session.RateLimiter
	logger      *zap.Logger
}

func NewAuthService(driverRepo driver.Repository, jwtManager *jwt.Manager, sessions *session.Manager, rateLimiter *session.RateLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		driverRepo:  driverRepo,
		jwtManager:  jwtManager,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Login verifies the correo/PIN pair and issues a session-backed token.
// Disabled users cannot log in.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResult, error) {
	correo := strings.ToLower(strings.TrimSpace(req.Correo))

	if s.rateLimiter != nil {
		allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, ip, correo)
		if err != nil {
			s.logger.Warn("login rate check failed, allowing attempt", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("login rate limit exceeded",
				zap.String("correo", correo),
				zap.String("ip", ip),
			)
			return nil, fmt.Errorf("too many login attempts, %d remaining: %w", remaining, xerrors.ErrRateLimited)
		}
	}

	u, err := s.driverRepo.FindByCorreo(ctx, correo)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
		}
		return nil, err
	}

	if u.Rol == driver.RoleDeshabilitado {
		return nil, fmt.Errorf("account disabled: %w", xerrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(req.PIN)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}

	token, jti, expiresAt, err := s.jwtManager.Generate(u.ID, string(u.Rol))
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", xerrors.ErrInternal)
	}

	if err := s.sessions.CreateSession(ctx, &session.SessionData{
		JTI:        jti,
		IdentityID: u.ID,
		Rol:        string(u.Rol),
		LoginAt:    time.Now(),
		ExpiresAt:  expiresAt,
	}); err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", xerrors.ErrInternal)
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, ip, correo); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", u.ID),
		zap.String("rol", string(u.Rol)),
	)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: driver.DriverInfo{
			ID:            u.ID,
			Nombre:        u.Nombre,
			RUT:           u.RUT,
			Correo:        u.Correo,
			Telefono:      u.Telefono,
			Rol:           u.Rol,
			FechaCreacion: u.FechaCreacion.Format(time.RFC3339),
		},
	}, nil
}

// ValidateToken verifies the token signature and checks the backing session
// still exists. A token whose session was deleted or expired is rejected.
func (s *AuthService) ValidateToken(ctx context.Context, tokenStr string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verify(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", xerrors.ErrUnauthorized)
	}

	if _, err := s.sessions.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, fmt.Errorf("session expired: %w", xerrors.ErrSessionExpired)
	}

	return claims, nil
}

// Logout deletes the session backing the token. The token itself stays
// cryptographically valid until expiry but will no longer pass validation.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if err := s.sessions.DeleteSession(ctx, claims.IdentityID, claims.ID); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", xerrors.ErrInternal)
	}
	s.logger.Info("user logged out", zap.Int64("user_id", claims.IdentityID))
	return nil
}
