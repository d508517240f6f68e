package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lastmile-routing-engine/internal/domain"
)

var seattleCoords = []domain.Coordinates{
	{Lat: 47.6062, Lng: -122.3321}, // downtown
	{Lat: 47.6242, Lng: -122.3321}, // ~2 km due north
	{Lat: 47.6097, Lng: -122.3331},
	{Lat: 47.5480, Lng: -122.3838},
}

func TestHaversineZeroDiagonal(t *testing.T) {
	p := NewHaversineProvider(0)
	dist, travel, err := p.BuildMatrices(context.Background(), seattleCoords)
	require.NoError(t, err)

	for i := 0; i < dist.Side(); i++ {
		require.Zero(t, dist.At(i, i))
		require.Zero(t, travel.At(i, i))
	}
}

func TestHaversineSymmetry(t *testing.T) {
	p := NewHaversineProvider(0)
	dist, travel, err := p.BuildMatrices(context.Background(), seattleCoords)
	require.NoError(t, err)

	for i := 0; i < dist.Side(); i++ {
		for j := 0; j < dist.Side(); j++ {
			require.InDelta(t, dist.At(i, j), dist.At(j, i), 1e-9)
			require.InDelta(t, travel.At(i, j), travel.At(j, i), 1e-9)
		}
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Two points 0.018 degrees of latitude apart sit roughly 2 km from
	// each other on the ground.
	p := NewHaversineProvider(0)
	dist, _, err := p.BuildMatrices(context.Background(), seattleCoords[:2])
	require.NoError(t, err)

	d := dist.At(0, 1)
	require.Greater(t, d, 1.8)
	require.Less(t, d, 2.2)
}

func TestHaversineTimeProportionalToDistance(t *testing.T) {
	p := NewHaversineProvider(0)
	dist, travel, err := p.BuildMatrices(context.Background(), seattleCoords)
	require.NoError(t, err)

	for i := 0; i < dist.Side(); i++ {
		for j := 0; j < dist.Side(); j++ {
			want := dist.At(i, j) / DefaultAvgSpeedKmh * 60
			require.InEpsilon(t, want+1, travel.At(i, j)+1, 1e-6,
				"travel[%d][%d] should be dist/speed*60", i, j)
		}
	}
}

func TestHaversineCustomSpeed(t *testing.T) {
	p := NewHaversineProvider(60)
	dist, travel, err := p.BuildMatrices(context.Background(), seattleCoords[:2])
	require.NoError(t, err)

	// At 60 km/h, minutes equal kilometres.
	require.InDelta(t, dist.At(0, 1), travel.At(0, 1), 1e-9)
}

func TestHaversineTriangleInequality(t *testing.T) {
	p := NewHaversineProvider(0)
	dist, _, err := p.BuildMatrices(context.Background(), []domain.Coordinates{
		{Lat: 47.60, Lng: -122.33},
		{Lat: 47.62, Lng: -122.35},
		{Lat: 47.61, Lng: -122.30},
	})
	require.NoError(t, err)

	require.LessOrEqual(t, dist.At(0, 2), dist.At(0, 1)+dist.At(1, 2)+1e-9)
}

func TestHaversineEntriesFiniteNonNegative(t *testing.T) {
	p := NewHaversineProvider(0)
	dist, travel, err := p.BuildMatrices(context.Background(), seattleCoords)
	require.NoError(t, err)

	for i := 0; i < dist.Side(); i++ {
		for j := 0; j < dist.Side(); j++ {
			require.GreaterOrEqual(t, dist.At(i, j), 0.0)
			require.GreaterOrEqual(t, travel.At(i, j), 0.0)
			require.False(t, dist.At(i, j) != dist.At(i, j), "dist[%d][%d] is NaN", i, j)
		}
	}
}
