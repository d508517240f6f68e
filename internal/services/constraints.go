package services

import (
	"math"

	"lastmile-routing-engine/internal/domain"
)

// DefaultDispatchMin is the fleet dispatch time, 08:00 as minutes since
// midnight. Every route walk starts its clock here.
const DefaultDispatchMin = 480.0

// CheckCapacity reports whether the summed stop weights fit within the
// vehicle capacity.
func CheckCapacity(stops []domain.StopRecord, capacityKg float64) bool {
	var total float64
	for _, s := range stops {
		total += s.WeightKg
	}
	return total <= capacityKg
}

// CheckTimeWindow reports whether an arrival lands inside the window.
// Both endpoints are inclusive.
func CheckTimeWindow(arrivalMin, earliestMin, latestMin float64) bool {
	return arrivalMin >= earliestMin && arrivalMin <= latestMin
}

// ValidateRoute walks an ordered stop list from the depot at dispatchMin,
// checking capacity up front and every time window along the way. On success
// it returns the raw arrival minutes per stop, before any wait at an early
// arrival, which is what display layers render. A capacity or window
// violation returns (false, nil). The return leg to the depot is not checked
// against any window; depot hours are advisory.
func ValidateRoute(stops []domain.StopRecord, capacityKg float64, travel *domain.Matrix, depotIdx int, dispatchMin float64) (bool, []float64) {
	if !CheckCapacity(stops, capacityKg) {
		return false, nil
	}

	arrivals := make([]float64, 0, len(stops))
	t := dispatchMin
	p := depotIdx

	for _, s := range stops {
		arrival := t + travel.At(p, s.MatrixIdx)
		if arrival > s.LatestMin {
			return false, nil
		}
		arrivals = append(arrivals, arrival)
		// Arriving early means waiting until the window opens.
		t = math.Max(arrival, s.EarliestMin)
		p = s.MatrixIdx
	}
	return true, arrivals
}
