package ports

import (
	"context"

	"lastmile-routing-engine/internal/domain"
)

// Contract for building the square distance and travel-time matrices over a
// coordinate list. Index 0 of the input is the depot; implementations must
// return matrices whose indices match the input order.
type MatrixProvider interface {
	// BuildMatrices returns (distances in km, travel times in minutes).
	BuildMatrices(ctx context.Context, coords []domain.Coordinates) (dist, travel *domain.Matrix, err error)
}
