package ports

import (
	"context"

	"lastmile-routing-engine/internal/domain"
)

// Port: a boundary for storing and retrieving Depot entities.
type DepotRepository interface {
	// Create persists a new depot and returns its id.
	Create(ctx context.Context, d domain.Depot) (int64, error)
	// GetByID returns ErrNotFound when no depot has the id.
	GetByID(ctx context.Context, id int64) (domain.Depot, error)
}
