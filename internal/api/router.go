package api

import (
	"net/http"

	"lastmile-routing-engine/internal/api/handlers"
	"lastmile-routing-engine/internal/hub"
	"lastmile-routing-engine/internal/ports"
	"lastmile-routing-engine/internal/services"
)

// Deps carries everything the HTTP surface needs. Handlers depend on ports
// and services only, so adapters stay swappable at this seam.
type Deps struct {
	Queue      ports.JobQueue
	Routes     ports.RouteStore
	Stops      ports.StopRepository
	Vehicles   ports.VehicleRepository
	Rerouter   *services.Rerouter
	Simulator  *services.Simulator
	Hub        *hub.Hub
	CORSOrigin string
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Queue:    deps.Queue,
		Routes:   deps.Routes,
		Rerouter: deps.Rerouter,
		Hub:      deps.Hub,
	}
	stopHandler := &handlers.StopHandler{Repo: deps.Stops}
	vehicleHandler := &handlers.VehicleHandler{Repo: deps.Vehicles}
	simHandler := &handlers.SimulationHandler{Sim: deps.Simulator}
	wsHandler := &handlers.WSHandler{Hub: deps.Hub}

	mux.HandleFunc("GET /health", handlers.Health)

	// The watcher endpoint lives inside the routes subtree, so the read
	// views (status, stops, detail) share one wildcard pattern: ServeMux
	// cannot hold /routes/{job_id}/status next to /routes/ws/{route_id},
	// and /routes/ws/{route_id} is more specific than the view pattern.
	mux.HandleFunc("POST /routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("GET /routes/{route_id}", routeHandler.Get)
	mux.HandleFunc("GET /routes/{route_id}/{view}", routeHandler.View)
	mux.HandleFunc("POST /routes/{route_id}/reroute", routeHandler.Reroute)
	mux.HandleFunc("GET /routes/ws/{route_id}", wsHandler.Watch)

	mux.HandleFunc("GET /stops", stopHandler.List)
	mux.HandleFunc("POST /stops", stopHandler.Create)
	mux.HandleFunc("GET /stops/{stop_id}", stopHandler.Get)

	mux.HandleFunc("GET /vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /vehicles/{vehicle_id}", vehicleHandler.Get)

	mux.HandleFunc("POST /simulation/start", simHandler.Start)
	mux.HandleFunc("POST /simulation/inject-traffic", simHandler.InjectTraffic)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(deps.CORSOrigin, mux)))
}
