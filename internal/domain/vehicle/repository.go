// internal/domain/vehicle/repository.go
package vehicle

import "context"

// Freed identifies a vehicle whose driver reference was cleared as a side
// effect of a reassignment, surfaced to the caller as a warning.
type Freed struct {
	VehicleID int64
	Patente   string
}

type Repository interface {
	// Create persists a new vehicle. The plate must already be normalized.
	// Returns xerrors.ErrDuplicateEntry when the plate exists.
	Create(ctx context.Context, v *Vehicle) error

	FindByID(ctx context.Context, id int64) (*Vehicle, error)

	List(ctx context.Context) ([]VehicleInfo, error)

	// Delete removes a vehicle. Returns xerrors.ErrConflict when dependent
	// trip or fuel rows block deletion.
	Delete(ctx context.Context, id int64) error

	// AssignDriver sets (or clears, when driverID is nil) the vehicle's
	// driver. If the driver already holds another vehicle, that vehicle is
	// cleared first; clear and set run in a single transaction. Returns the
	// freed vehicle, if any.
	AssignDriver(ctx context.Context, vehicleID int64, driverID *int64) (*Freed, error)

	// UpdatePosition overwrites the last-known coordinates of the vehicle
	// with the given exact plate. Last write wins. Returns
	// xerrors.ErrNotFound when no vehicle has that plate.
	UpdatePosition(ctx context.Context, patente string, lat, lon float64) error
}
