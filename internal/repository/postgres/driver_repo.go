// internal/repository/postgres/driver_repo.go
package postgres

import (
	"context"

	"flota-service/internal/domain/driver"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create persists a new driver. The id comes from the usuarios sequence, so
// concurrent creations can never collide.
func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	query := `
		INSERT INTO usuarios (nombre, rut, correo, telefono, pin_hash, rol, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		d.Nombre, d.RUT, d.Correo, d.Telefono, d.PINHash, d.Rol, d.FechaCreacion,
	).Scan(&d.ID)

	return translate(err, "failed to create driver")
}

// FindByID retrieves a driver by ID
func (r *DriverRepository) FindByID(ctx context.Context, id int64) (*driver.Driver, error) {
	query := `
		SELECT id, nombre, rut, correo, telefono, pin_hash, rol, fecha_creacion
		FROM usuarios
		WHERE id = $1
	`

	var d driver.Driver
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Nombre, &d.RUT, &d.Correo, &d.Telefono, &d.PINHash, &d.Rol, &d.FechaCreacion,
	)
	if err != nil {
		return nil, translate(err, "failed to find driver")
	}

	return &d, nil
}

// FindByCorreo retrieves a driver by email, used by the login flow.
func (r *DriverRepository) FindByCorreo(ctx context.Context, correo string) (*driver.Driver, error) {
	query := `
		SELECT id, nombre, rut, correo, telefono, pin_hash, rol, fecha_creacion
		FROM usuarios
		WHERE correo = $1
	`

	var d driver.Driver
	err := r.db.QueryRow(ctx, query, correo).Scan(
		&d.ID, &d.Nombre, &d.RUT, &d.Correo, &d.Telefono, &d.PINHash, &d.Rol, &d.FechaCreacion,
	)
	if err != nil {
		return nil, translate(err, "failed to find driver by correo")
	}

	return &d, nil
}

// List returns every user record, newest first.
func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	query := `
		SELECT id, nombre, rut, correo, telefono, pin_hash, rol, fecha_creacion
		FROM usuarios
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate(err, "failed to list drivers")
	}
	defer rows.Close()

	var drivers []driver.Driver
	for rows.Next() {
		var d driver.Driver
		if err := rows.Scan(
			&d.ID, &d.Nombre, &d.RUT, &d.Correo, &d.Telefono, &d.PINHash, &d.Rol, &d.FechaCreacion,
		); err != nil {
			return nil, translate(err, "failed to scan driver")
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "failed to list drivers")
	}

	return drivers, nil
}

// Disable flips the role to DESHABILITADO and frees every vehicle the driver
// holds, in one transaction.
func (r *DriverRepository) Disable(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, translate(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE usuarios SET rol = $1 WHERE id = $2`, driver.RoleDeshabilitado, id)
	if err != nil {
		return nil, translate(err, "failed to disable driver")
	}
	if tag.RowsAffected() == 0 {
		return nil, translate(errNoRows(), "failed to disable driver")
	}

	freed, err := clearAssignments(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate(err, "failed to commit disable")
	}

	return freed, nil
}

// Delete frees the driver's vehicles and hard-deletes the record in one
// transaction. Trip history referencing the driver blocks deletion.
func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translate(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := clearAssignments(ctx, tx, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return translate(err, "failed to delete driver")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to delete driver")
	}

	return translate(tx.Commit(ctx), "failed to commit delete")
}
