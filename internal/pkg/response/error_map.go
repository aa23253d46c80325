// internal/pkg/response/error_map.go
package response

import (
	"net/http"

	xerrors "flota-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an application error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case xerrors.Is(err, xerrors.ErrUnauthorized), xerrors.Is(err, xerrors.ErrSessionExpired):
		return http.StatusUnauthorized
	case xerrors.Is(err, xerrors.ErrForbidden):
		return http.StatusForbidden
	case xerrors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, xerrors.ErrDuplicateEntry), xerrors.Is(err, xerrors.ErrConflict):
		return http.StatusConflict
	case xerrors.Is(err, xerrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// FromError sends the error response matching the sentinel wrapped in err.
// Internal errors are masked with the fallback message; everything else
// carries its own message.
func FromError(c *gin.Context, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		Error(c, code, fallback, xerrors.ErrInternal)
		return
	}
	Error(c, code, err.Error(), err)
}
