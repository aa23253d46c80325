// internal/service/fuel/fuel.go
package fuel

import (
	"context"
	"fmt"
	"time"

	"flota-service/internal/domain/fuel"
	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type FuelService struct {
	fuelRepo    fuel.Repository
	vehicleRepo vehicle.Repository
	logger      *zap.Logger
}

func NewFuelService(fuelRepo fuel.Repository, vehicleRepo vehicle.Repository, logger *zap.Logger) *FuelService {
	return &FuelService{
		fuelRepo:    fuelRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// CreatePurchase registers a fuel purchase. Litros and costo_total must be
// strictly positive.
func (s *FuelService) CreatePurchase(ctx context.Context, req *fuel.CreatePurchaseRequest) (*fuel.Purchase, error) {
	if req.Litros <= 0 {
		return nil, fmt.Errorf("litros must be greater than zero: %w", xerrors.ErrInvalidInput)
	}
	if req.CostoTotal <= 0 {
		return nil, fmt.Errorf("costo_total must be greater than zero: %w", xerrors.ErrInvalidInput)
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("invalid fecha %q: %w", req.Fecha, xerrors.ErrInvalidInput)
	}
	hora, err := time.Parse("15:04", req.Hora)
	if err != nil {
		if hora, err = time.Parse("15:04:05", req.Hora); err != nil {
			return nil, fmt.Errorf("invalid hora %q: %w", req.Hora, xerrors.ErrInvalidInput)
		}
	}

	if _, err := s.vehicleRepo.FindByID(ctx, req.VehiculoID); err != nil {
		return nil, err
	}

	p := &fuel.Purchase{
		VehiculoID: req.VehiculoID,
		Litros:     req.Litros,
		CostoTotal: req.CostoTotal,
		Fecha:      fecha,
		Hora: time.Date(fecha.Year(), fecha.Month(), fecha.Day(),
			hora.Hour(), hora.Minute(), hora.Second(), 0, time.UTC),
	}

	if err := s.fuelRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create fuel purchase", zap.Error(err))
		return nil, err
	}

	s.logger.Info("fuel purchase created",
		zap.Int64("purchase_id", p.ID),
		zap.Int64("vehiculo_id", p.VehiculoID),
		zap.Float64("litros", p.Litros),
	)

	return p, nil
}

// ListPurchases returns purchases matching the filters.
func (s *FuelService) ListPurchases(ctx context.Context, f fuel.Filters) ([]fuel.Purchase, error) {
	return s.fuelRepo.List(ctx, f)
}

// DeletePurchase removes a purchase on explicit request.
func (s *FuelService) DeletePurchase(ctx context.Context, id int64) error {
	if err := s.fuelRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("fuel purchase deleted", zap.Int64("purchase_id", id))
	return nil
}
