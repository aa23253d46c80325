// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	xerrors "flota-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that the repositories translate into the application
// error taxonomy. Raw backend errors never leave this package.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translate converts a backend error into a sentinel from pkg/errors,
// wrapped with context. A nil error passes through.
func translate(err error, context string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", context, xerrors.ErrDuplicateEntry)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", context, xerrors.ErrConflict)
		}
	}
	// Keep the backend detail in the chain for logging; callers match on the
	// sentinel and never surface the detail to users.
	return fmt.Errorf("%s: %v: %w", context, err, xerrors.ErrInternal)
}

func errNoRows() error {
	return pgx.ErrNoRows
}

// clearAssignments frees every vehicle currently assigned to the driver,
// returning the plates that were cleared. Must run inside the caller's
// transaction.
func clearAssignments(ctx context.Context, tx pgx.Tx, driverID int64) ([]string, error) {
	rows, err := tx.Query(ctx,
		`UPDATE vehiculos SET conductor_id = NULL WHERE conductor_id = $1 RETURNING patente`, driverID)
	if err != nil {
		return nil, translate(err, "failed to clear assignments")
	}
	defer rows.Close()

	var plates []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, translate(err, "failed to scan freed plate")
		}
		plates = append(plates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "failed to clear assignments")
	}

	return plates, nil
}
