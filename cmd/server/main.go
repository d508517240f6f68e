package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"lastmile-routing-engine/internal/adapters/cache"
	"lastmile-routing-engine/internal/adapters/distance"
	"lastmile-routing-engine/internal/adapters/jobs"
	"lastmile-routing-engine/internal/adapters/repositories"
	"lastmile-routing-engine/internal/api"
	"lastmile-routing-engine/internal/config"
	"lastmile-routing-engine/internal/hub"
	"lastmile-routing-engine/internal/platform/db"
	"lastmile-routing-engine/internal/services"
)

// main is the API composition root. It wires concrete adapters (Postgres,
// Redis, ORS) behind ports and starts the HTTP server. Solving happens in
// the worker binary; this process only enqueues jobs and serves reads,
// reroutes and watcher connections.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Idempotent schema setup on startup keeps local runs zero-step.
	if err := repositories.InitSchema(ctx, database); err != nil {
		log.Fatal(err)
	}

	broker, err := redisClient(cfg.BrokerURL)
	if err != nil {
		log.Fatal(err)
	}
	defer broker.Close()

	results, err := redisClient(cfg.ResultBackendURL)
	if err != nil {
		log.Fatal(err)
	}
	defer results.Close()

	queue := jobs.NewQueue(broker, results)

	// The reroute path builds matrices inline, so the server carries the
	// same provider chain as the worker. An empty API key skips the
	// road-network provider entirely.
	matrixCache := cache.NewMatrixCache(database)
	provider, err := distance.New(cfg.ORSAPIKey, 0, matrixCache)
	if err != nil {
		log.Fatal(err)
	}

	depots := repositories.NewSQLDepotRepository(database)
	vehicles := repositories.NewSQLVehicleRepository(database)
	stops := repositories.NewSQLStopRepository(database)
	routes := repositories.NewSQLRouteStore(database)

	router := api.NewRouter(api.Deps{
		Queue:    queue,
		Routes:   routes,
		Stops:    stops,
		Vehicles: vehicles,
		Rerouter: &services.Rerouter{
			Depots:   depots,
			Vehicles: vehicles,
			Stops:    stops,
			Routes:   routes,
			Matrices: provider,
		},
		Simulator: &services.Simulator{
			Depots:   depots,
			Vehicles: vehicles,
			Stops:    stops,
		},
		Hub:        hub.New(),
		CORSOrigin: cfg.CORSOrigin,
	})

	// Read and write timeouts stay unset: watcher connections are
	// long-lived WebSockets that manage their own per-write deadlines.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s env=%s", cfg.Port, cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Fatal(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func redisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url %q: %w", rawURL, err)
	}
	return redis.NewClient(opts), nil
}
