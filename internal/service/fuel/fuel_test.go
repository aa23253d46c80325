package fuel

import (
	"context"
	"fmt"
	"testing"

	"flota-service/internal/domain/fuel"
	"flota-service/internal/domain/vehicle"
	xerrors "flota-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeFuelRepo struct {
	purchases map[int64]*fuel.Purchase
	nextID    int64
}

func newFakeFuelRepo() *fakeFuelRepo {
	return &fakeFuelRepo{purchases: make(map[int64]*fuel.Purchase), nextID: 1}
}

func (r *fakeFuelRepo) Create(_ context.Context, p *fuel.Purchase) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakeFuelRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.purchases[id]; !ok {
		return fmt.Errorf("purchase %d: %w", id, xerrors.ErrNotFound)
	}
	delete(r.purchases, id)
	return nil
}

func (r *fakeFuelRepo) List(_ context.Context, _ fuel.Filters) ([]fuel.Purchase, error) {
	return nil, nil
}

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

func newService(repo *fakeFuelRepo) *FuelService {
	vehicles := &stubVehicleRepo{known: map[int64]bool{1: true}}
	return NewFuelService(repo, vehicles, zap.NewNop())
}

func validRequest() *fuel.CreatePurchaseRequest {
	return &fuel.CreatePurchaseRequest{
		VehiculoID: 1,
		Litros:     35.5,
		CostoTotal: 42000,
		Fecha:      "2026-09-01",
		Hora:       "14:30",
	}
}

func TestCreatePurchase(t *testing.T) {
	repo := newFakeFuelRepo()
	svc := newService(repo)

	p, err := svc.CreatePurchase(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if p.ID == 0 {
		t.Error("purchase id not set")
	}
	if p.Hora.Hour() != 14 || p.Hora.Minute() != 30 {
		t.Errorf("Hora = %v, want 14:30", p.Hora)
	}
}

func TestCreatePurchaseRejectsNonPositiveAmounts(t *testing.T) {
	svc := newService(newFakeFuelRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*fuel.CreatePurchaseRequest)
	}{
		{"zero litros", func(r *fuel.CreatePurchaseRequest) { r.Litros = 0 }},
		{"negative litros", func(r *fuel.CreatePurchaseRequest) { r.Litros = -5 }},
		{"zero costo", func(r *fuel.CreatePurchaseRequest) { r.CostoTotal = 0 }},
		{"negative costo", func(r *fuel.CreatePurchaseRequest) { r.CostoTotal = -100 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(req)
			_, err := svc.CreatePurchase(ctx, req)
			if !xerrors.Is(err, xerrors.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreatePurchaseUnknownVehicle(t *testing.T) {
	svc := newService(newFakeFuelRepo())

	req := validRequest()
	req.VehiculoID = 99
	_, err := svc.CreatePurchase(context.Background(), req)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreatePurchaseInvalidDate(t *testing.T) {
	svc := newService(newFakeFuelRepo())

	req := validRequest()
	req.Fecha = "01/09/2026"
	_, err := svc.CreatePurchase(context.Background(), req)
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDeletePurchase(t *testing.T) {
	repo := newFakeFuelRepo()
	svc := newService(repo)

	p, err := svc.CreatePurchase(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if err := svc.DeletePurchase(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePurchase: %v", err)
	}

	err = svc.DeletePurchase(context.Background(), p.ID)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
