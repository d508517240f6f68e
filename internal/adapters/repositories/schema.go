package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates every table the engine uses. Statements are idempotent
// so both dbtool and dev-mode server startup can run them safely.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDepotsQuery := `
	CREATE TABLE IF NOT EXISTS depots (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		open_time TIME NOT NULL,
		close_time TIME NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		depot_id BIGINT NOT NULL REFERENCES depots(id),
		capacity_kg DOUBLE PRECISION NOT NULL,
		driver_name TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		id BIGSERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		earliest_time TIME NOT NULL,
		latest_time TIME NOT NULL,
		package_weight_kg DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'in_route', 'delivered', 'failed'))
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id),
		date DATE NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_time_min DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createRouteStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(id),
		stop_id BIGINT NOT NULL REFERENCES stops(id),
		sequence INT NOT NULL,
		planned_arrival TEXT,
		actual_arrival TEXT,
		UNIQUE (route_id, sequence)
	);
	`

	createRoutesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_routes_vehicle_date
	ON routes(vehicle_id, date);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
		coord_digest TEXT PRIMARY KEY,
		side INT NOT NULL,
		distances TEXT NOT NULL,
		durations TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	statements := []string{
		createDepotsQuery,
		createVehiclesQuery,
		createStopsQuery,
		createRoutesQuery,
		createRouteStopsQuery,
		createRoutesIndexQuery,
		createMatrixCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
