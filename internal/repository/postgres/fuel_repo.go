// internal/repository/postgres/fuel_repo.go
package postgres

import (
	"context"
	"fmt"

	"flota-service/internal/domain/fuel"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FuelRepository struct {
	db *pgxpool.Pool
}

func NewFuelRepository(db *pgxpool.Pool) *FuelRepository {
	return &FuelRepository{db: db}
}

// Create persists a new fuel purchase
func (r *FuelRepository) Create(ctx context.Context, p *fuel.Purchase) error {
	query := `
		INSERT INTO cargas_combustible (vehiculo_id, litros, costo_total, fecha, hora)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		p.VehiculoID, p.Litros, p.CostoTotal, p.Fecha, p.Hora,
	).Scan(&p.ID)

	return translate(err, "failed to create fuel purchase")
}

// Delete removes a fuel purchase on explicit request.
func (r *FuelRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cargas_combustible WHERE id = $1`, id)
	if err != nil {
		return translate(err, "failed to delete fuel purchase")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to delete fuel purchase")
	}

	return nil
}

// List returns purchases matching the filters, newest first. Date bounds are
// inclusive; a non-nil VehicleIDs restricts to those vehicles.
func (r *FuelRepository) List(ctx context.Context, f fuel.Filters) ([]fuel.Purchase, error) {
	query := `
		SELECT id, vehiculo_id, litros, costo_total, fecha, hora
		FROM cargas_combustible
		WHERE 1=1
	`
	args := []interface{}{}

	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	if f.VehicleIDs != nil {
		args = append(args, f.VehicleIDs)
		query += fmt.Sprintf(" AND vehiculo_id = ANY($%d)", len(args))
	}

	query += " ORDER BY fecha DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "failed to list fuel purchases")
	}
	defer rows.Close()

	var purchases []fuel.Purchase
	for rows.Next() {
		var p fuel.Purchase
		if err := rows.Scan(
			&p.ID, &p.VehiculoID, &p.Litros, &p.CostoTotal, &p.Fecha, &p.Hora,
		); err != nil {
			return nil, translate(err, "failed to scan fuel purchase")
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "failed to list fuel purchases")
	}

	return purchases, nil
}
