package services

import (
	"context"
	"fmt"
	"math"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Rerouter recomputes arrival estimates for a live route after traffic
// events degrade edge travel times. Stop order and vehicle assignment never
// change; only the ETAs move. Window misses caused by the delays show up in
// the new ETA values and are left for downstream consumers to judge.
type Rerouter struct {
	Depots   ports.DepotRepository
	Vehicles ports.VehicleRepository
	Stops    ports.StopRepository
	Routes   ports.RouteStore
	Matrices ports.MatrixProvider
}

// Reroute recomputes the schedule for routeID with the fleet's default
// dispatch time.
func (r *Rerouter) Reroute(ctx context.Context, routeID int64, events []domain.TrafficEvent) (*domain.RerouteResult, error) {
	return r.RerouteAt(ctx, routeID, events, DefaultDispatchMin)
}

// RerouteAt is Reroute with an explicit dispatch clock, in minutes since
// midnight.
func (r *Rerouter) RerouteAt(ctx context.Context, routeID int64, events []domain.TrafficEvent, dispatchMin float64) (*domain.RerouteResult, error) {
	route, err := r.Routes.GetRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("reroute: load route %d: %w", routeID, err)
	}
	vehicle, err := r.Vehicles.GetByID(ctx, route.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("reroute: load vehicle %d: %w", route.VehicleID, err)
	}
	depot, err := r.Depots.GetByID(ctx, vehicle.DepotID)
	if err != nil {
		return nil, fmt.Errorf("reroute: load depot %d: %w", vehicle.DepotID, err)
	}

	routeStops, err := r.Routes.ListRouteStops(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("reroute: load route stops %d: %w", routeID, err)
	}

	stopIDs := make([]int64, len(routeStops))
	for i, rs := range routeStops {
		stopIDs[i] = rs.StopID
	}
	stops, err := r.Stops.GetByIDs(ctx, stopIDs)
	if err != nil {
		return nil, fmt.Errorf("reroute: load stops: %w", err)
	}
	if len(stops) != len(routeStops) {
		return nil, fmt.Errorf("reroute: route %d references %d stops, found %d", routeID, len(routeStops), len(stops))
	}

	coords := make([]domain.Coordinates, 0, len(stops)+1)
	coords = append(coords, depot.Coords())
	for _, s := range stops {
		coords = append(coords, s.Coords())
	}

	_, travel, err := r.Matrices.BuildMatrices(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("reroute: build matrices: %w", err)
	}

	// Inflate the affected edges. Out-of-range indices are skipped rather
	// than rejected, so stale events cannot fail a reroute.
	for _, ev := range events {
		factor := ev.DelayFactor
		if factor == 0 {
			factor = domain.DefaultDelayFactor
		}
		if travel.InBounds(ev.FromIdx, ev.ToIdx) {
			travel.Scale(ev.FromIdx, ev.ToIdx, factor)
		}
	}

	// Walk the unchanged sequence and recompute each ETA. The reported
	// arrival is the raw value before any wait at an early stop.
	t := dispatchMin
	p := 0
	updated := make([]domain.RerouteStop, 0, len(stops))

	for i, stop := range stops {
		matrixIdx := i + 1
		arrival := t + travel.At(p, matrixIdx)
		t = math.Max(arrival, stop.EarliestTime.Minutes())
		p = matrixIdx

		updated = append(updated, domain.RerouteStop{
			StopID:            stop.ID,
			Sequence:          i,
			PlannedArrival:    domain.MinutesToHHMM(arrival),
			PlannedArrivalMin: roundTo(arrival, 1),
			Lat:               stop.Lat,
			Lng:               stop.Lng,
		})
	}

	return &domain.RerouteResult{RouteID: routeID, Rerouted: true, Stops: updated}, nil
}
