package services

import (
	"context"
	"fmt"
	"time"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Optimizer executes one optimization job end to end: load the entities,
// build the cost matrices, run the solver, persist the winning routes, and
// report how much the local search gained over the greedy baseline.
//
// It is invoked from queue workers, never from the request path, so each
// call owns its whole pipeline and commits once.
type Optimizer struct {
	Depots   ports.DepotRepository
	Vehicles ports.VehicleRepository
	Stops    ports.StopRepository
	Routes   ports.RouteStore
	Matrices ports.MatrixProvider
}

// Run processes a job request and returns the result payload stored for the
// status endpoint. Unknown vehicle or stop ids are skipped silently;
// an unknown depot fails the job.
func (o *Optimizer) Run(ctx context.Context, req domain.OptimizeRequest) (*domain.OptimizeResult, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("optimize: parse date %q: %w", req.Date, err)
	}

	depot, err := o.Depots.GetByID(ctx, req.DepotID)
	if err != nil {
		return nil, fmt.Errorf("optimize: load depot %d: %w", req.DepotID, err)
	}
	vehicles, err := o.Vehicles.GetByIDs(ctx, req.VehicleIDs)
	if err != nil {
		return nil, fmt.Errorf("optimize: load vehicles: %w", err)
	}
	stops, err := o.Stops.GetByIDs(ctx, req.StopIDs)
	if err != nil {
		return nil, fmt.Errorf("optimize: load stops: %w", err)
	}

	// Depot is always matrix index 0; stops take indices 1..n.
	coords := make([]domain.Coordinates, 0, len(stops)+1)
	coords = append(coords, depot.Coords())
	for _, s := range stops {
		coords = append(coords, s.Coords())
	}

	dist, travel, err := o.Matrices.BuildMatrices(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("optimize: build matrices: %w", err)
	}

	records := make([]domain.StopRecord, len(stops))
	for i, s := range stops {
		records[i] = domain.StopRecord{
			StopID:      s.ID,
			MatrixIdx:   i + 1,
			WeightKg:    s.PackageWeightKg,
			EarliestMin: s.EarliestTime.Minutes(),
			LatestMin:   s.LatestTime.Minutes(),
		}
	}
	fleet := make([]domain.VehicleRecord, len(vehicles))
	for i, v := range vehicles {
		fleet[i] = domain.VehicleRecord{
			VehicleID:  v.ID,
			CapacityKg: v.CapacityKg,
			DriverName: v.DriverName,
		}
	}

	solver := NewSolver(records, fleet, dist, travel, 0, DefaultDispatchMin)

	// Greedy-only distance is kept as the benchmark the local search is
	// measured against.
	greedyRoutes := solver.Greedy()
	var greedyTotal float64
	for _, r := range greedyRoutes {
		greedyTotal += r.DistanceKm
	}

	optimized := solver.Solve()
	var optimizedTotal float64
	for _, r := range optimized {
		optimizedTotal += r.DistanceKm
	}

	improvementPct := 0.0
	if greedyTotal > 0 {
		improvementPct = (greedyTotal - optimizedTotal) / greedyTotal * 100
	}

	solved := make([]domain.SolvedRoute, len(optimized))
	for i, r := range optimized {
		stopIDs := make([]int64, len(r.Stops))
		for k, idx := range r.Stops {
			stopIDs[k] = records[idx].StopID
		}
		solved[i] = domain.SolvedRoute{
			VehicleID:  r.Vehicle.VehicleID,
			DistanceKm: r.DistanceKm,
			StopIDs:    stopIDs,
		}
	}

	routeIDs, err := o.Routes.SaveSolution(ctx, date, solved)
	if err != nil {
		return nil, fmt.Errorf("optimize: save solution: %w", err)
	}

	return &domain.OptimizeResult{
		RouteIDs:         routeIDs,
		TotalDistanceKm:  roundTo(optimizedTotal, 3),
		GreedyDistanceKm: roundTo(greedyTotal, 3),
		ImprovementPct:   roundTo(improvementPct, 2),
		NumRoutes:        len(optimized),
		Score:            solver.Score(optimized),
	}, nil
}
