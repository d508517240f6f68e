package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// apiStore is an in-memory stand-in for the persistence ports, shared by the
// HTTP surface tests. Each port is a thin view over the same store so ids
// stay consistent across entity kinds.
type apiStore struct {
	mu         sync.Mutex
	nextID     int64
	depots     map[int64]domain.Depot
	vehicles   map[int64]domain.Vehicle
	stops      map[int64]domain.Stop
	routes     map[int64]domain.Route
	routeStops map[int64][]domain.RouteStop
}

func newAPIStore() *apiStore {
	return &apiStore{
		depots:     map[int64]domain.Depot{},
		vehicles:   map[int64]domain.Vehicle{},
		stops:      map[int64]domain.Stop{},
		routes:     map[int64]domain.Route{},
		routeStops: map[int64][]domain.RouteStop{},
	}
}

func (m *apiStore) id() int64 {
	m.nextID++
	return m.nextID
}

type apiDepots struct{ *apiStore }

func (m apiDepots) Create(_ context.Context, d domain.Depot) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.id()
	m.depots[d.ID] = d
	return d.ID, nil
}

func (m apiDepots) GetByID(_ context.Context, id int64) (domain.Depot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.depots[id]
	if !ok {
		return domain.Depot{}, fmt.Errorf("depot %d: %w", id, ports.ErrNotFound)
	}
	return d, nil
}

type apiVehicles struct{ *apiStore }

func (m apiVehicles) Create(_ context.Context, v domain.Vehicle) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = m.id()
	m.vehicles[v.ID] = v
	return v.ID, nil
}

func (m apiVehicles) GetByID(_ context.Context, id int64) (domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return domain.Vehicle{}, fmt.Errorf("vehicle %d: %w", id, ports.ErrNotFound)
	}
	return v, nil
}

func (m apiVehicles) GetByIDs(_ context.Context, ids []int64) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Vehicle, 0, len(ids))
	for _, id := range ids {
		if v, ok := m.vehicles[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m apiVehicles) List(_ context.Context) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Vehicle, 0, len(m.vehicles))
	for id := int64(1); id <= m.nextID; id++ {
		if v, ok := m.vehicles[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

type apiStops struct{ *apiStore }

func (m apiStops) Create(_ context.Context, s domain.Stop) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.stops[s.ID] = s
	return s.ID, nil
}

func (m apiStops) GetByID(_ context.Context, id int64) (domain.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stops[id]
	if !ok {
		return domain.Stop{}, fmt.Errorf("stop %d: %w", id, ports.ErrNotFound)
	}
	return s, nil
}

func (m apiStops) GetByIDs(_ context.Context, ids []int64) ([]domain.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Stop, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.stops[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m apiStops) List(_ context.Context) ([]domain.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Stop, 0, len(m.stops))
	for id := int64(1); id <= m.nextID; id++ {
		if s, ok := m.stops[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type apiRoutes struct{ *apiStore }

func (m apiRoutes) SaveSolution(_ context.Context, date time.Time, routes []domain.SolvedRoute) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(routes))
	for _, r := range routes {
		routeID := m.id()
		m.routes[routeID] = domain.Route{
			ID:              routeID,
			VehicleID:       r.VehicleID,
			Date:            date,
			TotalDistanceKm: r.DistanceKm,
		}
		for seq, stopID := range r.StopIDs {
			m.routeStops[routeID] = append(m.routeStops[routeID], domain.RouteStop{
				ID:       m.id(),
				RouteID:  routeID,
				StopID:   stopID,
				Sequence: seq,
			})
		}
		ids = append(ids, routeID)
	}
	return ids, nil
}

func (m apiRoutes) GetRoute(_ context.Context, id int64) (domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[id]
	if !ok {
		return domain.Route{}, fmt.Errorf("route %d: %w", id, ports.ErrNotFound)
	}
	return r, nil
}

func (m apiRoutes) ListRouteStops(_ context.Context, routeID int64) ([]domain.RouteStop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.routeStops[routeID]
	if len(rs) == 0 {
		return nil, fmt.Errorf("route %d stops: %w", routeID, ports.ErrNotFound)
	}
	return append([]domain.RouteStop(nil), rs...), nil
}

func (m apiRoutes) ListRouteStopDetail(ctx context.Context, routeID int64) ([]domain.RouteStopDetail, error) {
	rs, err := m.ListRouteStops(ctx, routeID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RouteStopDetail, 0, len(rs))
	for _, r := range rs {
		s := m.stops[r.StopID]
		out = append(out, domain.RouteStopDetail{
			StopID:          r.StopID,
			Sequence:        r.Sequence,
			PlannedArrival:  r.PlannedArrival,
			Lat:             s.Lat,
			Lng:             s.Lng,
			Address:         s.Address,
			EarliestTime:    s.EarliestTime,
			LatestTime:      s.LatestTime,
			PackageWeightKg: s.PackageWeightKg,
		})
	}
	return out, nil
}

// fakeQueue records submissions and serves canned statuses so tests never
// need a broker.
type fakeQueue struct {
	mu        sync.Mutex
	submitted []domain.OptimizeRequest
	statuses  map[string]domain.JobStatus
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{statuses: map[string]domain.JobStatus{}}
}

func (q *fakeQueue) Enqueue(_ context.Context, req domain.OptimizeRequest) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.submitted = append(q.submitted, req)
	return fmt.Sprintf("job-%d", len(q.submitted)), nil
}

func (q *fakeQueue) Status(_ context.Context, jobID string) (domain.JobStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if st, ok := q.statuses[jobID]; ok {
		return st, nil
	}
	return domain.JobStatus{State: domain.JobQueued}, nil
}

func (q *fakeQueue) setStatus(jobID string, st domain.JobStatus) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.statuses[jobID] = st
}
