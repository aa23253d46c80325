// internal/service/driver/driver.go
package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flota-service/internal/domain/driver"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type DriverService struct {
	driverRepo driver.Repository
	logger     *zap.Logger
}

func NewDriverService(driverRepo driver.Repository, logger *zap.Logger) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		logger:     logger,
	}
}

// CreateDriver registers a new driver. The role is always CONDUCTOR; the id
// comes from the store. Duplicate rut or correo surfaces as
// xerrors.ErrDuplicateEntry.
func (s *DriverService) CreateDriver(ctx context.Context, req *driver.CreateDriverRequest) (*driver.Driver, error) {
	rut := strings.TrimSpace(req.RUT)
	correo := strings.ToLower(strings.TrimSpace(req.Correo))
	if rut == "" || correo == "" {
		return nil, fmt.Errorf("rut and correo are required: %w", xerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	var telefono *string
	if t := strings.TrimSpace(req.Telefono); t != "" {
		telefono = &t
	}

	d := &driver.Driver{
		Nombre:        strings.TrimSpace(req.Nombre),
		RUT:           rut,
		Correo:        correo,
		Telefono:      telefono,
		PINHash:       string(hash),
		Rol:           driver.NormalizeRole(string(driver.RoleConductor)),
		FechaCreacion: time.Now(),
	}

	if err := s.driverRepo.Create(ctx, d); err != nil {
		if !xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			s.logger.Error("failed to create driver", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("driver created",
		zap.Int64("driver_id", d.ID),
		zap.String("rut", d.RUT),
	)

	return d, nil
}

// ListDrivers returns all drivers, excluding ADMIN users. The exclusion is
// case-insensitive; roles are normalized on write but old rows may differ.
func (s *DriverService) ListDrivers(ctx context.Context) ([]driver.DriverInfo, error) {
	all, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]driver.DriverInfo, 0, len(all))
	for _, d := range all {
		if driver.NormalizeRole(string(d.Rol)) == driver.RoleAdmin {
			continue
		}
		infos = append(infos, toInfo(d))
	}

	return infos, nil
}

// GetDriver retrieves a single driver.
func (s *DriverService) GetDriver(ctx context.Context, id int64) (*driver.Driver, error) {
	return s.driverRepo.FindByID(ctx, id)
}

// DisableDriver flips the role to DESHABILITADO and frees any vehicle the
// driver holds, as one transaction.
func (s *DriverService) DisableDriver(ctx context.Context, id int64) error {
	freed, err := s.driverRepo.Disable(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info("driver disabled",
		zap.Int64("driver_id", id),
		zap.Strings("freed_plates", freed),
	)

	return nil
}

// DeleteDriver frees any held vehicle and hard-deletes the record.
func (s *DriverService) DeleteDriver(ctx context.Context, id int64) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) && !xerrors.Is(err, xerrors.ErrConflict) {
			s.logger.Error("failed to delete driver", zap.Error(err))
		}
		return err
	}

	s.logger.Info("driver deleted", zap.Int64("driver_id", id))
	return nil
}

func toInfo(d driver.Driver) driver.DriverInfo {
	return driver.DriverInfo{
		ID:            d.ID,
		Nombre:        d.Nombre,
		RUT:           d.RUT,
		Correo:        d.Correo,
		Telefono:      d.Telefono,
		Rol:           d.Rol,
		FechaCreacion: d.FechaCreacion.Format(time.RFC3339),
	}
}
