package distance

import (
	"context"
	"math"

	"lastmile-routing-engine/internal/domain"
)

const earthRadiusKm = 6371.0

// DefaultAvgSpeedKmh is the travel-time assumption for great-circle
// estimates, a conservative urban delivery speed.
const DefaultAvgSpeedKmh = 30.0

// HaversineProvider builds matrices from great-circle distances. It needs no
// network or credentials, which makes it both the dev/test provider and the
// degradation target when the road-network API fails.
type HaversineProvider struct {
	avgSpeedKmh float64
}

func NewHaversineProvider(avgSpeedKmh float64) *HaversineProvider {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	return &HaversineProvider{avgSpeedKmh: avgSpeedKmh}
}

// BuildMatrices computes straight-line distances in km; travel time is
// distance over the configured average speed, in minutes. The diagonal is
// exactly zero and both matrices are symmetric.
func (h *HaversineProvider) BuildMatrices(_ context.Context, coords []domain.Coordinates) (*domain.Matrix, *domain.Matrix, error) {
	n := len(coords)
	dist := domain.NewMatrix(n)
	travel := domain.NewMatrix(n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := haversineKm(coords[i], coords[j])
			t := d / h.avgSpeedKmh * 60

			dist.Set(i, j, d)
			dist.Set(j, i, d)
			travel.Set(i, j, t)
			travel.Set(j, i, t)
		}
	}
	return dist, travel, nil
}

func haversineKm(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
