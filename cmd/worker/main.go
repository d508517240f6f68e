package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"lastmile-routing-engine/internal/adapters/cache"
	"lastmile-routing-engine/internal/adapters/distance"
	"lastmile-routing-engine/internal/adapters/jobs"
	"lastmile-routing-engine/internal/adapters/repositories"
	"lastmile-routing-engine/internal/config"
	"lastmile-routing-engine/internal/platform/db"
	"lastmile-routing-engine/internal/services"
)

// main runs the optimization worker pool. It consumes jobs the API enqueues,
// executes the full solve pipeline, and records outcomes in the result
// backend. The schema is owned by the server and dbtool; workers assume it
// exists.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

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

	matrixCache := cache.NewMatrixCache(database)
	provider, err := distance.New(cfg.ORSAPIKey, 0, matrixCache)
	if err != nil {
		log.Fatal(err)
	}

	optimizer := &services.Optimizer{
		Depots:   repositories.NewSQLDepotRepository(database),
		Vehicles: repositories.NewSQLVehicleRepository(database),
		Stops:    repositories.NewSQLStopRepository(database),
		Routes:   repositories.NewSQLRouteStore(database),
		Matrices: provider,
	}

	pool := &jobs.Pool{
		Queue:   jobs.NewQueue(broker, results),
		Run:     optimizer.Run,
		Workers: cfg.WorkerCount,
	}

	log.Printf("Worker pool starting workers=%d env=%s", cfg.WorkerCount, cfg.Environment)
	if err := pool.Serve(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("Worker pool stopped")
}

func redisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url %q: %w", rawURL, err)
	}
	return redis.NewClient(opts), nil
}
