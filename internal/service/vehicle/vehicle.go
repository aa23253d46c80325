// internal/service/vehicle/vehicle.go
package vehicle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type VehicleService struct {
	vehicleRepo vehicle.Repository
	driverRepo  driver.Repository
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo vehicle.Repository, driverRepo driver.Repository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		logger:      logger,
	}
}

// CreateVehicle registers a new vehicle. The plate is normalized (upper
// case, trimmed) before the uniqueness check.
func (s *VehicleService) CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	patente := vehicle.NormalizePlate(req.Patente)
	if patente == "" {
		return nil, fmt.Errorf("patente is required: %w", xerrors.ErrInvalidInput)
	}

	v := &vehicle.Vehicle{
		Patente:       patente,
		Modelo:        strings.TrimSpace(req.Modelo),
		Kilometraje:   req.Kilometraje,
		FechaCreacion: time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		if !xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			s.logger.Error("failed to create vehicle", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("vehicle created",
		zap.Int64("vehicle_id", v.ID),
		zap.String("patente", v.Patente),
	)

	return v, nil
}

// ListVehicles returns all vehicles with driver names resolved.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]vehicle.VehicleInfo, error) {
	return s.vehicleRepo.List(ctx)
}

// GetVehicle retrieves a single vehicle.
func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

// DeleteVehicle removes a vehicle. Vehicles with trip or fuel history cannot
// be deleted; the store signals it as xerrors.ErrConflict.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) && !xerrors.Is(err, xerrors.ErrConflict) {
			s.logger.Error("failed to delete vehicle", zap.Error(err))
		}
		return err
	}

	s.logger.Info("vehicle deleted", zap.Int64("vehicle_id", id))
	return nil
}

// AssignDriver sets or clears the vehicle's driver, keeping the
// one-driver-one-vehicle invariant. When the driver already holds another
// vehicle, that vehicle is freed in the same transaction and returned so the
// caller can surface a warning.
func (s *VehicleService) AssignDriver(ctx context.Context, vehicleID int64, driverID *int64) (*vehicle.Freed, error) {
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	if driverID != nil {
		d, err := s.driverRepo.FindByID(ctx, *driverID)
		if err != nil {
			return nil, err
		}
		if !d.CanDrive() {
			return nil, fmt.Errorf("driver %d has role %s and cannot be assigned: %w",
				d.ID, d.Rol, xerrors.ErrInvalidInput)
		}
	}

	freed, err := s.vehicleRepo.AssignDriver(ctx, vehicleID, driverID)
	if err != nil {
		s.logger.Error("failed to assign driver", zap.Error(err))
		return nil, err
	}

	if freed != nil {
		s.logger.Warn("previous vehicle freed during reassignment",
			zap.Int64("freed_vehicle_id", freed.VehicleID),
			zap.String("freed_patente", freed.Patente),
		)
	}

	return freed, nil
}
