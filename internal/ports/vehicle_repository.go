package ports

import (
	"context"

	"lastmile-routing-engine/internal/domain"
)

// Port: a boundary for storing and retrieving Vehicle entities.
type VehicleRepository interface {
	// Create persists a new vehicle and returns its id.
	Create(ctx context.Context, v domain.Vehicle) (int64, error)
	// GetByID returns ErrNotFound when no vehicle has the id.
	GetByID(ctx context.Context, id int64) (domain.Vehicle, error)
	// GetByIDs returns the vehicles that exist, in the order requested.
	// Unknown ids are skipped, not errors.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Vehicle, error)
	// List returns all vehicles ordered by id.
	List(ctx context.Context) ([]domain.Vehicle, error)
}
