package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/platform/obs"
	"lastmile-routing-engine/internal/ports"
)

// Postgres-backed implementation of the RouteStore port. One optimization
// job writes all its routes through a single transaction: route header
// first, then the ordered route_stops rows.
type SQLRouteStore struct{ DB *sql.DB }

func NewSQLRouteStore(db *sql.DB) *SQLRouteStore {
	return &SQLRouteStore{DB: db}
}

func (r *SQLRouteStore) SaveSolution(ctx context.Context, date time.Time, routes []domain.SolvedRoute) (_ []int64, err error) {
	defer obs.Time(ctx, "routes.SaveSolution")(&err)

	if r.DB == nil {
		return nil, errors.New("route store: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save solution: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertRouteQuery := `
	INSERT INTO routes (vehicle_id, date, total_distance_km)
	VALUES ($1, $2, $3)
	RETURNING id;
	`

	insertStopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_stops (route_id, stop_id, sequence)
	VALUES ($1, $2, $3);
	`)
	if err != nil {
		return nil, fmt.Errorf("save solution: prepare route_stops insert: %w", err)
	}
	defer insertStopStmt.Close()

	routeIDs := make([]int64, 0, len(routes))
	for _, route := range routes {
		var routeID int64
		err := tx.QueryRowContext(ctx, insertRouteQuery, route.VehicleID, date, route.DistanceKm).Scan(&routeID)
		if err != nil {
			return nil, fmt.Errorf("save solution: insert route vehicle_id=%d: %w", route.VehicleID, err)
		}

		for seq, stopID := range route.StopIDs {
			if _, err := insertStopStmt.ExecContext(ctx, routeID, stopID, seq); err != nil {
				return nil, fmt.Errorf("save solution: insert route_stop route_id=%d seq=%d: %w", routeID, seq, err)
			}
		}

		routeIDs = append(routeIDs, routeID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save solution: commit tx: %w", err)
	}

	return routeIDs, nil
}

func (r *SQLRouteStore) GetRoute(ctx context.Context, id int64) (domain.Route, error) {
	query := `
	SELECT id, vehicle_id, date, COALESCE(total_distance_km, 0), COALESCE(total_time_min, 0)
	FROM routes
	WHERE id = $1;
	`

	var route domain.Route
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&route.ID, &route.VehicleID, &route.Date, &route.TotalDistanceKm, &route.TotalTimeMin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("get route %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %d: scan row: %w", id, err)
	}
	return route, nil
}

// ListRouteStops returns the ordered positions of a route. A route with no
// rows reads as not found, matching the read contract of the HTTP surface.
func (r *SQLRouteStore) ListRouteStops(ctx context.Context, routeID int64) ([]domain.RouteStop, error) {
	query := `
	SELECT id, route_id, stop_id, sequence, planned_arrival, actual_arrival
	FROM route_stops
	WHERE route_id = $1
	ORDER BY sequence;
	`

	rows, err := r.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("list route stops %d: query route_stops table: %w", routeID, err)
	}
	defer rows.Close()

	stops := make([]domain.RouteStop, 0, 16)
	for rows.Next() {
		var rs domain.RouteStop
		if err := rows.Scan(&rs.ID, &rs.RouteID, &rs.StopID, &rs.Sequence, &rs.PlannedArrival, &rs.ActualArrival); err != nil {
			return nil, fmt.Errorf("list route stops %d: scan row: %w", routeID, err)
		}
		stops = append(stops, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list route stops %d: row iteration: %w", routeID, err)
	}

	if len(stops) == 0 {
		return nil, fmt.Errorf("list route stops %d: %w", routeID, ports.ErrNotFound)
	}
	return stops, nil
}

// ListRouteStopDetail joins positions with their stops, the shape map
// clients render markers and polylines from.
func (r *SQLRouteStore) ListRouteStopDetail(ctx context.Context, routeID int64) ([]domain.RouteStopDetail, error) {
	query := `
	SELECT rs.stop_id, rs.sequence, rs.planned_arrival,
		s.lat, s.lng, s.address, s.earliest_time, s.latest_time, s.package_weight_kg
	FROM route_stops rs
	JOIN stops s ON s.id = rs.stop_id
	WHERE rs.route_id = $1
	ORDER BY rs.sequence;
	`

	rows, err := r.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("route detail %d: query route_stops table: %w", routeID, err)
	}
	defer rows.Close()

	detail := make([]domain.RouteStopDetail, 0, 16)
	for rows.Next() {
		var d domain.RouteStopDetail
		if err := rows.Scan(
			&d.StopID, &d.Sequence, &d.PlannedArrival,
			&d.Lat, &d.Lng, &d.Address, &d.EarliestTime, &d.LatestTime, &d.PackageWeightKg,
		); err != nil {
			return nil, fmt.Errorf("route detail %d: scan row: %w", routeID, err)
		}
		detail = append(detail, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("route detail %d: row iteration: %w", routeID, err)
	}

	if len(detail) == 0 {
		return nil, fmt.Errorf("route detail %d: %w", routeID, ports.ErrNotFound)
	}
	return detail, nil
}
