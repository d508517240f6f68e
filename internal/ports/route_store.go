package ports

import (
	"context"
	"time"

	"lastmile-routing-engine/internal/domain"
)

// Port: a boundary for persisting solved routes and reading them back.
type RouteStore interface {
	// SaveSolution writes all routes of one optimization atomically and
	// returns the new route ids in input order.
	SaveSolution(ctx context.Context, date time.Time, routes []domain.SolvedRoute) ([]int64, error)
	// GetRoute returns ErrNotFound when no route has the id.
	GetRoute(ctx context.Context, id int64) (domain.Route, error)
	// ListRouteStops returns the ordered positions of a route, or
	// ErrNotFound when the route has none.
	ListRouteStops(ctx context.Context, routeID int64) ([]domain.RouteStop, error)
	// ListRouteStopDetail returns the ordered positions joined with their
	// stops, or ErrNotFound when the route has none.
	ListRouteStopDetail(ctx context.Context, routeID int64) ([]domain.RouteStopDetail, error)
}
