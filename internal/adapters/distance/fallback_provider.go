package distance

import (
	"context"
	"log"

	"lastmile-routing-engine/internal/adapters/cache"
	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// FallbackProvider tries the primary provider and degrades to the secondary
// on any error. Primary failures are logged at warning level and never
// propagate: the solver always receives a matrix.
type FallbackProvider struct {
	primary   ports.MatrixProvider
	secondary ports.MatrixProvider
}

func NewFallbackProvider(primary, secondary ports.MatrixProvider) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

func (f *FallbackProvider) BuildMatrices(ctx context.Context, coords []domain.Coordinates) (*domain.Matrix, *domain.Matrix, error) {
	dist, travel, err := f.primary.BuildMatrices(ctx, coords)
	if err != nil {
		log.Printf("matrix provider unavailable err=%q, using great-circle fallback", err)
		return f.secondary.BuildMatrices(ctx, coords)
	}
	return dist, travel, nil
}

// New assembles the provider chain the planners consume. With an API key the
// road-network provider runs first, optionally backed by a persistent cache,
// and great-circle estimates cover any failure. Without a key the estimates
// are used directly.
func New(apiKey string, avgSpeedKmh float64, matrixCache *cache.MatrixCache) (ports.MatrixProvider, error) {
	haversine := NewHaversineProvider(avgSpeedKmh)
	if apiKey == "" {
		return haversine, nil
	}

	ors, err := NewORSMatrixProvider(apiKey, matrixCache)
	if err != nil {
		return nil, err
	}
	return NewFallbackProvider(ors, haversine), nil
}
