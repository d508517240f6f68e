package distance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"lastmile-routing-engine/internal/domain"
)

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	dist := domain.NewMatrix(2)
	dist.Set(0, 1, 7)
	dist.Set(1, 0, 7)

	primary := NewMockMatrixProvider(dist, domain.NewMatrix(2))
	secondary := NewMockMatrixProvider(domain.NewMatrix(2), domain.NewMatrix(2))

	f := NewFallbackProvider(primary, secondary)
	got, _, err := f.BuildMatrices(context.Background(), make([]domain.Coordinates, 2))
	require.NoError(t, err)

	require.InDelta(t, 7.0, got.At(0, 1), 1e-9)
	require.Equal(t, 1, primary.Calls)
	require.Zero(t, secondary.Calls)
}

func TestFallbackDegradesOnPrimaryError(t *testing.T) {
	primary := NewMockMatrixProvider(nil, nil)
	primary.Err = errors.New("ors: connection refused")

	secondary := NewHaversineProvider(0)

	f := NewFallbackProvider(primary, secondary)
	dist, travel, err := f.BuildMatrices(context.Background(), seattleCoords[:2])
	require.NoError(t, err)

	require.Equal(t, 1, primary.Calls)
	require.Greater(t, dist.At(0, 1), 0.0)
	require.Greater(t, travel.At(0, 1), 0.0)
}

func TestFallbackCoversDeadEndpoint(t *testing.T) {
	// A live ORS provider pointed at a dead endpoint must degrade to the
	// great-circle estimate, never error out to the caller.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	ors, err := NewORSMatrixProvider("bad-key", nil)
	require.NoError(t, err)
	ors.baseURL = srv.URL

	f := NewFallbackProvider(ors, NewHaversineProvider(0))
	dist, _, err := f.BuildMatrices(context.Background(), seattleCoords[:2])
	require.NoError(t, err)
	require.Greater(t, dist.At(0, 1), 1.8)
	require.Less(t, dist.At(0, 1), 2.2)
}

func TestNewSelectsProviderByKey(t *testing.T) {
	// No key: straight to great-circle estimates.
	p, err := New("", 0, nil)
	require.NoError(t, err)
	_, ok := p.(*HaversineProvider)
	require.True(t, ok, "keyless config should build the haversine provider, got %T", p)

	// Key present: road-network primary with a great-circle net under it.
	p, err = New("some-key", 0, nil)
	require.NoError(t, err)
	_, ok = p.(*FallbackProvider)
	require.True(t, ok, "keyed config should build the fallback chain, got %T", p)
}
