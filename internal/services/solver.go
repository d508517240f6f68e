package services

import (
	"math"

	"lastmile-routing-engine/internal/domain"
)

// improvementEpsilon keeps 2-opt from accepting moves inside floating-point
// noise; a candidate must beat the incumbent by more than this margin.
const improvementEpsilon = 1e-6

// Solver partitions stops among capacitated vehicles and orders each
// vehicle's visits to minimise total driving distance under hard time
// windows.
//
// Phase 1 builds routes with greedy nearest-neighbour construction; phase 2
// improves each route with 2-opt local search. First-improvement scanning
// keeps the search deterministic for a given input order and terminates
// because distance strictly decreases over a finite candidate space. The
// solver never fails: stops it cannot place simply stay unassigned and
// surface in the score.
type Solver struct {
	stops    []domain.StopRecord
	vehicles []domain.VehicleRecord
	dist     *domain.Matrix
	travel   *domain.Matrix
	depotIdx int
	dispatch float64
}

// NewSolver wires a solver over precomputed matrices. Matrix index 0 must be
// the depot; stops[i].MatrixIdx addresses the matrices. The solver is
// stateless across calls, so one instance can solve and score repeatedly.
func NewSolver(stops []domain.StopRecord, vehicles []domain.VehicleRecord, dist, travel *domain.Matrix, depotIdx int, dispatchMin float64) *Solver {
	return &Solver{
		stops:    stops,
		vehicles: vehicles,
		dist:     dist,
		travel:   travel,
		depotIdx: depotIdx,
		dispatch: dispatchMin,
	}
}

// Solve runs greedy construction followed by per-route 2-opt improvement.
func (s *Solver) Solve() []domain.PlannedRoute {
	routes := s.Greedy()
	for i := range routes {
		routes[i] = s.TwoOpt(routes[i])
	}
	return routes
}

// Greedy assigns stops vehicle by vehicle, always committing the nearest
// unassigned stop that fits the remaining capacity and can still make its
// window. Vehicles run in input order; ties on distance keep the first
// candidate encountered, so output is stable for a given input order. A
// vehicle with no feasible candidate closes its route and the next vehicle
// starts fresh from the depot.
func (s *Solver) Greedy() []domain.PlannedRoute {
	unassigned := make([]int, len(s.stops))
	for i := range unassigned {
		unassigned[i] = i
	}

	var routes []domain.PlannedRoute

	for _, vehicle := range s.vehicles {
		if len(unassigned) == 0 {
			break
		}

		var tour []int
		load := 0.0
		t := s.dispatch
		p := s.depotIdx

		for len(unassigned) > 0 {
			best := -1
			bestDist := math.Inf(1)

			for _, i := range unassigned {
				stop := s.stops[i]

				if load+stop.WeightKg > vehicle.CapacityKg {
					continue
				}
				if t+s.travel.At(p, stop.MatrixIdx) > stop.LatestMin {
					continue
				}

				if d := s.dist.At(p, stop.MatrixIdx); d < bestDist {
					bestDist, best = d, i
				}
			}

			if best == -1 {
				break // no reachable feasible stop, close this route
			}

			stop := s.stops[best]
			t = math.Max(t+s.travel.At(p, stop.MatrixIdx), stop.EarliestMin)
			load += stop.WeightKg
			p = stop.MatrixIdx
			tour = append(tour, best)
			unassigned = removeIndex(unassigned, best)
		}

		if len(tour) > 0 {
			routes = append(routes, domain.PlannedRoute{
				Vehicle:    vehicle,
				Stops:      tour,
				DistanceKm: s.RouteDistance(tour),
			})
		}
	}

	return routes
}

// TwoOpt improves a single route by reversing sub-segments, accepting any
// reversal that shortens the tour beyond the epsilon and stays feasible, and
// rescanning until a full pass finds no improving move.
func (s *Solver) TwoOpt(route domain.PlannedRoute) domain.PlannedRoute {
	best := append([]int(nil), route.Stops...)
	bestDist := s.RouteDistance(best)

	improved := true
	for improved {
		improved = false
		for i := 0; i < len(best)-1; i++ {
			for j := i + 2; j < len(best); j++ {
				candidate := reverseSegment(best, i, j)
				d := s.RouteDistance(candidate)
				if d < bestDist-improvementEpsilon && s.feasible(candidate, route.Vehicle) {
					best = candidate
					bestDist = d
					improved = true
				}
			}
		}
	}

	return domain.PlannedRoute{Vehicle: route.Vehicle, Stops: best, DistanceKm: bestDist}
}

// Score summarises a solution. Unassigned counts every input stop that no
// route carries.
func (s *Solver) Score(routes []domain.PlannedRoute) domain.Score {
	var totalDist float64
	assigned := 0
	for _, r := range routes {
		totalDist += r.DistanceKm
		assigned += len(r.Stops)
	}

	return domain.Score{
		TotalDistanceKm:  roundTo(totalDist, 3),
		NumRoutes:        len(routes),
		AvgStopsPerRoute: roundTo(float64(assigned)/math.Max(float64(len(routes)), 1), 1),
		Unassigned:       len(s.stops) - assigned,
	}
}

// RouteDistance is the closed-loop distance depot -> tour -> depot. An empty
// tour is zero.
func (s *Solver) RouteDistance(tour []int) float64 {
	if len(tour) == 0 {
		return 0
	}

	d := s.dist.At(s.depotIdx, s.stops[tour[0]].MatrixIdx)
	for k := 0; k < len(tour)-1; k++ {
		d += s.dist.At(s.stops[tour[k]].MatrixIdx, s.stops[tour[k+1]].MatrixIdx)
	}
	d += s.dist.At(s.stops[tour[len(tour)-1]].MatrixIdx, s.depotIdx)
	return d
}

// feasible re-walks a candidate ordering against capacity and time windows.
func (s *Solver) feasible(tour []int, vehicle domain.VehicleRecord) bool {
	var weight float64
	for _, i := range tour {
		weight += s.stops[i].WeightKg
	}
	if weight > vehicle.CapacityKg {
		return false
	}

	t := s.dispatch
	p := s.depotIdx
	for _, i := range tour {
		stop := s.stops[i]
		t = math.Max(t+s.travel.At(p, stop.MatrixIdx), stop.EarliestMin)
		if t > stop.LatestMin {
			return false
		}
		p = stop.MatrixIdx
	}
	return true
}

// reverseSegment returns a copy of tour with positions i+1..j reversed.
func reverseSegment(tour []int, i, j int) []int {
	out := make([]int, len(tour))
	copy(out, tour[:i+1])
	for k := 0; k <= j-i-1; k++ {
		out[i+1+k] = tour[j-k]
	}
	copy(out[j+1:], tour[j+1:])
	return out
}

// removeIndex drops the first occurrence of v, preserving order.
func removeIndex(xs []int, v int) []int {
	for k, x := range xs {
		if x == v {
			return append(xs[:k], xs[k+1:]...)
		}
	}
	return xs
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
