// internal/domain/trip/repository.go
package trip

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Trip) error
	FindByID(ctx context.Context, id int64) (*Trip, error)

	// Close sets the end fields of an in-progress trip.
	Close(ctx context.Context, id int64, horaFin time.Time, kilometrajeFin *int, ubicacionFinTxt *string) error

	Delete(ctx context.Context, id int64) error

	// List returns trips matching the filters, newest first.
	List(ctx context.Context, f Filters) ([]Trip, error)
}
