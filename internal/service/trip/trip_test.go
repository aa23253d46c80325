package trip

import (
	"context"
	"fmt"
	"testing"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/trip"
	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeTripRepo struct {
	trips  map[int64]*trip.Trip
	nextID int64
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[int64]*trip.Trip), nextID: 1}
}

func (r *fakeTripRepo) Create(_ context.Context, t *trip.Trip) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *fakeTripRepo) FindByID(_ context.Context, id int64) (*trip.Trip, error) {
	t, ok := r.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", id, xerrors.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripRepo) Close(_ context.Context, id int64, horaFin time.Time, kmFin *int, ubicacionFin *string) error {
	t, ok := r.trips[id]
	if !ok {
		return fmt.Errorf("trip %d: %w", id, xerrors.ErrNotFound)
	}
	t.HoraFin = &horaFin
	t.KilometrajeFin = kmFin
	t.UbicacionFinTxt = ubicacionFin
	return nil
}

func (r *fakeTripRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.trips[id]; !ok {
		return fmt.Errorf("trip %d: %w", id, xerrors.ErrNotFound)
	}
	delete(r.trips, id)
	return nil
}

func (r *fakeTripRepo) List(_ context.Context, _ trip.Filters) ([]trip.Trip, error) {
	return nil, nil
}

type stubDriverRepo struct{ known map[int64]bool }

func (r *stubDriverRepo) Create(_ context.Context, _ *driver.Driver) error { return nil }
func (r *stubDriverRepo) FindByID(_ context.Context, id int64) (*driver.Driver, error) {
	if !r.known[id] {
		return nil, fmt.Errorf("driver %d: %w", id, xerrors.ErrNotFound)
	}
	return &driver.Driver{ID: id, Rol: driver.RoleConductor}, nil
}
func (r *stubDriverRepo) FindByCorreo(_ context.Context, _ string) (*driver.Driver, error) {
	return nil, xerrors.ErrNotFound
}
func (r *stubDriverRepo) List(_ context.Context) ([]driver.Driver, error)      { return nil, nil }
func (r *stubDriverRepo) Disable(_ context.Context, _ int64) ([]string, error) { return nil, nil }
func (r *stubDriverRepo) Delete(_ context.Context, _ int64) error              { return nil }

type stubVehicleRepo struct{ known map[int64]bool }

func (r *stubVehicleRepo) Create(_ context.Context, _ *vehicle.Vehicle) error { return nil }
func (r *stubVehicleRepo) FindByID(_ context.Context, id int64) (*vehicle.Vehicle, error) {
	if !r.known[id] {
		return nil, fmt.Errorf("vehicle %d: %w", id, xerrors.ErrNotFound)
	}
	return &vehicle.Vehicle{ID: id}, nil
}
func (r *stubVehicleRepo) List(_ context.Context) ([]vehicle.VehicleInfo, error) { return nil, nil }
func (r *stubVehicleRepo) Delete(_ context.Context, _ int64) error               { return nil }
func (r *stubVehicleRepo) AssignDriver(_ context.Context, _ int64, _ *int64) (*vehicle.Freed, error) {
	return nil, nil
}
func (r *stubVehicleRepo) UpdatePosition(_ context.Context, _ string, _, _ float64) error {
	return nil
}

func newService(repo *fakeTripRepo) *TripService {
	drivers := &stubDriverRepo{known: map[int64]bool{1: true}}
	vehicles := &stubVehicleRepo{known: map[int64]bool{1: true}}
	return NewTripService(repo, drivers, vehicles, zap.NewNop())
}

func startTrip(t *testing.T, svc *TripService, kmInicio *int) *trip.Trip {
	t.Helper()
	req := &trip.CreateTripRequest{
		ConductorID: 1,
		VehiculoID:  1,
		Fecha:       "2026-09-01",
		HoraInicio:  "08:30",
	}
	if kmInicio != nil {
		req.KilometrajeInicio = kmInicio
	}
	tr, err := svc.StartTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("StartTrip: %v", err)
	}
	return tr
}

func intPtr(v int) *int { return &v }

func TestStartTrip(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newService(repo)

	tr := startTrip(t, svc, intPtr(1000))

	if !tr.InProgress() {
		t.Error("new trip not in progress")
	}
	if tr.Fecha.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("Fecha = %v", tr.Fecha)
	}
	if tr.HoraInicio.Hour() != 8 || tr.HoraInicio.Minute() != 30 {
		t.Errorf("HoraInicio = %v, want 08:30", tr.HoraInicio)
	}
}

func TestStartTripUnknownDriver(t *testing.T) {
	svc := newService(newFakeTripRepo())

	_, err := svc.StartTrip(context.Background(), &trip.CreateTripRequest{
		ConductorID: 99, VehiculoID: 1, Fecha: "2026-09-01", HoraInicio: "08:30",
	})
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStartTripInvalidDate(t *testing.T) {
	svc := newService(newFakeTripRepo())

	_, err := svc.StartTrip(context.Background(), &trip.CreateTripRequest{
		ConductorID: 1, VehiculoID: 1, Fecha: "01-09-2026", HoraInicio: "08:30",
	})
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCloseTrip(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newService(repo)
	tr := startTrip(t, svc, intPtr(1000))

	closed, err := svc.CloseTrip(context.Background(), tr.ID, &trip.CloseTripRequest{
		HoraFin:        "17:45",
		KilometrajeFin: intPtr(1250),
	})
	if err != nil {
		t.Fatalf("CloseTrip: %v", err)
	}

	if closed.InProgress() {
		t.Error("trip still in progress after close")
	}
	if d, ok := closed.Distance(); !ok || d != 250 {
		t.Errorf("Distance = %d,%v, want 250,true", d, ok)
	}
}

func TestCloseTripRejectsLowerOdometer(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newService(repo)
	tr := startTrip(t, svc, intPtr(1000))

	_, err := svc.CloseTrip(context.Background(), tr.ID, &trip.CloseTripRequest{
		HoraFin:        "17:45",
		KilometrajeFin: intPtr(900),
	})
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	got, _ := repo.FindByID(context.Background(), tr.ID)
	if !got.InProgress() {
		t.Error("trip was closed despite invalid odometer")
	}
}

func TestCloseTripAlreadyClosed(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newService(repo)
	tr := startTrip(t, svc, intPtr(1000))

	req := &trip.CloseTripRequest{HoraFin: "17:45", KilometrajeFin: intPtr(1250)}
	if _, err := svc.CloseTrip(context.Background(), tr.ID, req); err != nil {
		t.Fatalf("first close: %v", err)
	}

	_, err := svc.CloseTrip(context.Background(), tr.ID, req)
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput on second close", err)
	}
}

func TestCloseTripWithoutStartOdometer(t *testing.T) {
	// Odometer validation cannot apply without a start reading; close still
	// succeeds and the trip contributes no distance.
	repo := newFakeTripRepo()
	svc := newService(repo)
	tr := startTrip(t, svc, nil)

	closed, err := svc.CloseTrip(context.Background(), tr.ID, &trip.CloseTripRequest{
		HoraFin: "17:45",
	})
	if err != nil {
		t.Fatalf("CloseTrip: %v", err)
	}
	if _, ok := closed.Distance(); ok {
		t.Error("Distance computable without odometers")
	}
	if closed.DistanceOrZero() != 0 {
		t.Errorf("DistanceOrZero = %d, want 0", closed.DistanceOrZero())
	}
}
