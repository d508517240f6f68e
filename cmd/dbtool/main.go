package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"lastmile-routing-engine/internal/adapters/repositories"
	"lastmile-routing-engine/internal/config"
	"lastmile-routing-engine/internal/platform/db"
	"lastmile-routing-engine/internal/services"
)

var (
	seedFlag     = flag.Bool("seed", false, "generate a demo scenario after initializing the schema")
	cityFlag     = flag.String("city", "seattle", "scenario city (seattle, la, nyc)")
	stopsFlag    = flag.Int("stops", 20, "scenario stop count")
	vehiclesFlag = flag.Int("vehicles", 3, "scenario vehicle count")
	randSeedFlag = flag.Int64("rand-seed", 0, "deterministic scenario seed (0 draws a fresh one)")
)

func main() {
	flag.Parse()
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !*seedFlag {
		return
	}

	sim := &services.Simulator{
		Depots:   repositories.NewSQLDepotRepository(database),
		Vehicles: repositories.NewSQLVehicleRepository(database),
		Stops:    repositories.NewSQLStopRepository(database),
	}

	var seed *int64
	if *randSeedFlag != 0 {
		seed = randSeedFlag
	}

	log.Println("Seeding demo scenario...")
	res, err := sim.GenerateScenario(ctx, *cityFlag, *stopsFlag, *vehiclesFlag, seed)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf(
		"Scenario ready: depot_id=%d vehicles=%d stops=%d",
		res.DepotID, len(res.VehicleIDs), len(res.StopIDs),
	)
}
