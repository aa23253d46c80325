// internal/repository/postgres/trip_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"flota-service/internal/domain/trip"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

// Create persists a new trip
func (r *TripRepository) Create(ctx context.Context, t *trip.Trip) error {
	query := `
		INSERT INTO recorridos (
			conductor_id, vehiculo_id, fecha, hora_inicio, hora_fin,
			kilometraje_inicio, kilometraje_fin, ubicacion_inicio_txt, ubicacion_fin_txt
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		t.ConductorID, t.VehiculoID, t.Fecha, t.HoraInicio, t.HoraFin,
		t.KilometrajeInicio, t.KilometrajeFin, t.UbicacionInicioTxt, t.UbicacionFinTxt,
	).Scan(&t.ID)

	return translate(err, "failed to create trip")
}

// FindByID retrieves a trip by ID
func (r *TripRepository) FindByID(ctx context.Context, id int64) (*trip.Trip, error) {
	query := `
		SELECT id, conductor_id, vehiculo_id, fecha, hora_inicio, hora_fin,
		       kilometraje_inicio, kilometraje_fin, ubicacion_inicio_txt, ubicacion_fin_txt
		FROM recorridos
		WHERE id = $1
	`

	var t trip.Trip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ConductorID, &t.VehiculoID, &t.Fecha, &t.HoraInicio, &t.HoraFin,
		&t.KilometrajeInicio, &t.KilometrajeFin, &t.UbicacionInicioTxt, &t.UbicacionFinTxt,
	)
	if err != nil {
		return nil, translate(err, "failed to find trip")
	}

	return &t, nil
}

// Close sets the end fields of a trip.
func (r *TripRepository) Close(ctx context.Context, id int64, horaFin time.Time, kilometrajeFin *int, ubicacionFinTxt *string) error {
	query := `
		UPDATE recorridos
		SET hora_fin = $1, kilometraje_fin = $2, ubicacion_fin_txt = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, horaFin, kilometrajeFin, ubicacionFinTxt, id)
	if err != nil {
		return translate(err, "failed to close trip")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to close trip")
	}

	return nil
}

// Delete removes a trip on explicit request.
func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recorridos WHERE id = $1`, id)
	if err != nil {
		return translate(err, "failed to delete trip")
	}
	if tag.RowsAffected() == 0 {
		return translate(errNoRows(), "failed to delete trip")
	}

	return nil
}

// List returns trips matching the filters, newest first. Date bounds are
// inclusive.
func (r *TripRepository) List(ctx context.Context, f trip.Filters) ([]trip.Trip, error) {
	query := `
		SELECT id, conductor_id, vehiculo_id, fecha, hora_inicio, hora_fin,
		       kilometraje_inicio, kilometraje_fin, ubicacion_inicio_txt, ubicacion_fin_txt
		FROM recorridos
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
	if f.ConductorID != nil {
		args = append(args, *f.ConductorID)
		query += fmt.Sprintf(" AND conductor_id = $%d", len(args))
	}

	query += " ORDER BY fecha DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "failed to list trips")
	}
	defer rows.Close()

	var trips []trip.Trip
	for rows.Next() {
		var t trip.Trip
		if err := rows.Scan(
			&t.ID, &t.ConductorID, &t.VehiculoID, &t.Fecha, &t.HoraInicio, &t.HoraFin,
			&t.KilometrajeInicio, &t.KilometrajeFin, &t.UbicacionInicioTxt, &t.UbicacionFinTxt,
		); err != nil {
			return nil, translate(err, "failed to scan trip")
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "failed to list trips")
	}

	return trips, nil
}
