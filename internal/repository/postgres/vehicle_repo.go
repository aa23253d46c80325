// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"

	"flota-service/internal/domain/vehicle"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create persists a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehiculos (patente, modelo, kilometraje, conductor_id, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		v.Patente, v.Modelo, v.Kilometraje, v.ConductorID, v.FechaCreacion,
	).Scan(&v.ID)

	return translate(err, "failed to create vehicle")
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `
		SELECT id, patente, modelo, kilometraje, conductor_id, latitud, longitud, fecha_creacion
		FROM vehiculos
		WHERE id = $1
	`

	var v vehicle.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Patente, &v.Modelo, &v.Kilometraje, &v.ConductorID,
		&v.Latitud, &v.Longitud, &v.FechaCreacion,
	)
	if err != nil {
		return nil, translate(err, "failed to find vehicle")
	}

	return &v, nil
}

// List returns all vehicles with the current driver's name resolved.
func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.VehicleInfo, error) {
	query := `
		SELECT v.id, v.patente, v.modelo, v.kilometraje, v.conductor_id,
		       u.nombre, v.latitud, v.longitud
		FROM vehiculos v
		LEFT JOIN usuarios u ON u.id = v.conductor_id
		ORDER BY v.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate(err, "failed to list vehicles")
	}
	defer rows.Close()

	var vehicles []vehicle.VehicleInfo
	for rows.Next() {
		var vi vehicle.VehicleInfo
		if err := rows.Scan(
			&vi.ID, &vi.Patente, &vi.Modelo, &vi.Kilometraje, &vi.ConductorID,
			&vi.ConductorNombre, &vi.Latitud, &vi.Longitud,
		); err != nil {
			return nil, translate(err, "failed to scan vehicle")
		}
		vehicles = append(vehicles, vi)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "failed to list vehicles")
	}

	return vehicles, nil
}

// Delete removes a vehicle. Dependent trip or fuel rows surface as
// xerrors.ErrConflict via the foreign-key translation.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehiculos WHERE id = $1`, id)
	if err != nil {
		return translate(err, "failed to delete vehicle")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to delete vehicle")
	}

	return nil
}

// AssignDriver sets or clears the vehicle's driver. Clearing the driver's
// previous vehicle and setting the new one run in a single transaction so no
// intermediate state is observable.
func (r *VehicleRepository) AssignDriver(ctx context.Context, vehicleID int64, driverID *int64) (*vehicle.Freed, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, translate(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	var freed *vehicle.Freed
	if driverID != nil {
		var f vehicle.Freed
		err := tx.QueryRow(ctx,
			`UPDATE vehiculos SET conductor_id = NULL
			 WHERE conductor_id = $1 AND id <> $2
			 RETURNING id, patente`, *driverID, vehicleID).Scan(&f.VehicleID, &f.Patente)
		if err != nil && err != pgx.ErrNoRows {
			return nil, translate(err, "failed to free previous vehicle")
		}
		if err == nil {
			freed = &f
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE vehiculos SET conductor_id = $1 WHERE id = $2`, driverID, vehicleID)
	if err != nil {
		return nil, translate(err, "failed to assign driver")
	}
	if tag.RowsAffected() == 0 {
		return nil, translate(errNoRows(), "failed to assign driver")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate(err, "failed to commit assignment")
	}

	return freed, nil
}

// UpdatePosition overwrites the last-known coordinates, last write wins.
func (r *VehicleRepository) UpdatePosition(ctx context.Context, patente string, lat, lon float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE vehiculos SET latitud = $1, longitud = $2 WHERE patente = $3`, lat, lon, patente)
	if err != nil {
		return translate(err, "failed to update position")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to update position")
	}

	return nil
}
