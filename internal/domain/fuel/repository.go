// internal/domain/fuel/repository.go
package fuel

import "context"

type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, id int64) error

	// List returns purchases matching the filters, newest first.
	List(ctx context.Context, f Filters) ([]Purchase, error)
}
