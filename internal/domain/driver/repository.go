// internal/domain/driver/repository.go
package driver

import "context"

type Repository interface {
	// Create persists a new driver. The store allocates the id.
	// Returns xerrors.ErrDuplicateEntry when rut or correo already exist.
	Create(ctx context.Context, d *Driver) error

	FindByID(ctx context.Context, id int64) (*Driver, error)
	FindByCorreo(ctx context.Context, correo string) (*Driver, error)

	// List returns every user record, all roles included.
	List(ctx context.Context) ([]Driver, error)

	// Disable flips the role to DESHABILITADO and clears the driver from
	// every vehicle currently assigned to them, in one transaction.
	// Returns the plates of the vehicles that were freed.
	Disable(ctx context.Context, id int64) ([]string, error)

	// Delete clears vehicle assignments and hard-deletes the driver in one
	// transaction. Returns xerrors.ErrConflict when a referential constraint
	// outside the assignment relation blocks deletion.
	Delete(ctx context.Context, id int64) error
}
