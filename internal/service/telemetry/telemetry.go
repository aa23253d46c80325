// internal/service/telemetry/telemetry.go
package telemetry

import (
	"context"
	"fmt"
	"time"

	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"
	"flota-service/internal/pkg/session"

	"go.uber.org/zap"
)

const (
	// One update per second per device, with burst headroom.
	ingestMaxUpdates = 120
	ingestWindow     = time.Minute
)

// TelemetryService accepts GPS position reports from tracking devices and
// overwrites the vehicle's last-known position. Updates are last-write-wins;
// no history is kept.
type TelemetryService struct {
	vehicleRepo vehicle.Repository
	rateLimiter *session.RateLimiter
	logger      *zap.Logger
}

func NewTelemetryService(vehicleRepo vehicle.Repository, rateLimiter *session.RateLimiter, logger *zap.Logger) *TelemetryService {
	return &TelemetryService{
		vehicleRepo: vehicleRepo,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Ingest records a position report for the vehicle with the given plate. The
// plate is matched exactly as sent by the device; devices are provisioned
// with the stored plate format.
func (s *TelemetryService) Ingest(ctx context.Context, patente string, lat, lon float64) error {
	if patente == "" {
		return fmt.Errorf("missing plate: %w", xerrors.ErrInvalidInput)
	}

	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.CheckIngestRate(ctx, patente, ingestMaxUpdates, ingestWindow)
		if err != nil {
			// A rate-limiter outage must not drop position data.
			s.logger.Warn("ingest rate check failed, allowing update",
				zap.String("patente", patente),
				zap.Error(err),
			)
		} else if !allowed {
			return fmt.Errorf("too many updates for plate %s: %w", patente, xerrors.ErrRateLimited)
		}
	}

	if err := s.vehicleRepo.UpdatePosition(ctx, patente, lat, lon); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return fmt.Errorf("plate %s not found: %w", patente, xerrors.ErrNotFound)
		}
		s.logger.Error("failed to update vehicle position",
			zap.String("patente", patente),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("position updated",
		zap.String("patente", patente),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)

	return nil
}
