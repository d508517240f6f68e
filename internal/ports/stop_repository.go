package ports

import (
	"context"

	"lastmile-routing-engine/internal/domain"
)

// Port: a boundary for storing and retrieving Stop entities.
type StopRepository interface {
	// Create persists a new stop and returns its id.
	Create(ctx context.Context, s domain.Stop) (int64, error)
	// GetByID returns ErrNotFound when no stop has the id.
	GetByID(ctx context.Context, id int64) (domain.Stop, error)
	// GetByIDs returns the stops that exist, in the order requested.
	// Unknown ids are skipped, not errors.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Stop, error)
	// List returns all stops ordered by id.
	List(ctx context.Context) ([]domain.Stop, error)
}
