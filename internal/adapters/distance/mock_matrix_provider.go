package distance

import (
	"context"
	"fmt"

	"lastmile-routing-engine/internal/domain"
)

// MockMatrixProvider serves canned matrices for tests and offline demos.
// Matrices are cloned per call so callers may perturb what they receive.
type MockMatrixProvider struct {
	Dist   *domain.Matrix
	Travel *domain.Matrix
	Err    error
	Calls  int
}

func NewMockMatrixProvider(dist, travel *domain.Matrix) *MockMatrixProvider {
	return &MockMatrixProvider{Dist: dist, Travel: travel}
}

func (m *MockMatrixProvider) BuildMatrices(_ context.Context, coords []domain.Coordinates) (*domain.Matrix, *domain.Matrix, error) {
	m.Calls++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	if len(coords) != m.Dist.Side() {
		return nil, nil, fmt.Errorf("mock matrix provider: got %d coords, want %d", len(coords), m.Dist.Side())
	}
	return m.Dist.Clone(), m.Travel.Clone(), nil
}
