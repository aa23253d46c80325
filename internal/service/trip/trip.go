// internal/service/trip/trip.go
package trip

import (
	"context"
	"fmt"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/trip"
	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type TripService struct {
	tripRepo    trip.Repository
	driverRepo  driver.Repository
	vehicleRepo vehicle.Repository
	logger      *zap.Logger
}

func NewTripService(tripRepo trip.Repository, driverRepo driver.Repository, vehicleRepo vehicle.Repository, logger *zap.Logger) *TripService {
	return &TripService{
		tripRepo:    tripRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// StartTrip opens a new trip for a driver and vehicle.
func (s *TripService) StartTrip(ctx context.Context, req *trip.CreateTripRequest) (*trip.Trip, error) {
	fecha, err := parseDate(req.Fecha)
	if err != nil {
		return nil, err
	}
	horaInicio, err := parseTimeOfDay(fecha, req.HoraInicio)
	if err != nil {
		return nil, err
	}

	if _, err := s.driverRepo.FindByID(ctx, req.ConductorID); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.FindByID(ctx, req.VehiculoID); err != nil {
		return nil, err
	}

	t := &trip.Trip{
		ConductorID:        req.ConductorID,
		VehiculoID:         req.VehiculoID,
		Fecha:              fecha,
		HoraInicio:         horaInicio,
		KilometrajeInicio:  req.KilometrajeInicio,
		UbicacionInicioTxt: req.UbicacionInicioTxt,
	}

	if err := s.tripRepo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create trip", zap.Error(err))
		return nil, err
	}

	s.logger.Info("trip started",
		zap.Int64("trip_id", t.ID),
		zap.Int64("conductor_id", t.ConductorID),
		zap.Int64("vehiculo_id", t.VehiculoID),
	)

	return t, nil
}

// CloseTrip ends an in-progress trip. An end odometer lower than the start
// odometer is rejected; closed trips are immutable history.
func (s *TripService) CloseTrip(ctx context.Context, id int64, req *trip.CloseTripRequest) (*trip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.InProgress() {
		return nil, fmt.Errorf("trip %d is already closed: %w", id, xerrors.ErrInvalidInput)
	}

	horaFin, err := parseTimeOfDay(t.Fecha, req.HoraFin)
	if err != nil {
		return nil, err
	}

	if req.KilometrajeFin != nil && t.KilometrajeInicio != nil && *req.KilometrajeFin < *t.KilometrajeInicio {
		return nil, fmt.Errorf("kilometraje_fin %d is below kilometraje_inicio %d: %w",
			*req.KilometrajeFin, *t.KilometrajeInicio, xerrors.ErrInvalidInput)
	}

	if err := s.tripRepo.Close(ctx, id, horaFin, req.KilometrajeFin, req.UbicacionFinTxt); err != nil {
		s.logger.Error("failed to close trip", zap.Error(err))
		return nil, err
	}

	s.logger.Info("trip closed", zap.Int64("trip_id", id))
	return s.tripRepo.FindByID(ctx, id)
}

// ListTrips returns trips matching the filters.
func (s *TripService) ListTrips(ctx context.Context, f trip.Filters) ([]trip.Trip, error) {
	return s.tripRepo.List(ctx, f)
}

// DeleteTrip removes a trip on explicit request.
func (s *TripService) DeleteTrip(ctx context.Context, id int64) error {
	if err := s.tripRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("trip deleted", zap.Int64("trip_id", id))
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid fecha %q: %w", s, xerrors.ErrInvalidInput)
	}
	return d, nil
}

func parseTimeOfDay(date time.Time, s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil {
			return time.Time{}, fmt.Errorf("invalid hora %q: %w", s, xerrors.ErrInvalidInput)
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}
