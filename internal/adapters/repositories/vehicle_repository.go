package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Postgres-backed implementation of the VehicleRepository port.
type SQLVehicleRepository struct{ DB *sql.DB }

func NewSQLVehicleRepository(db *sql.DB) *SQLVehicleRepository {
	return &SQLVehicleRepository{DB: db}
}

func (r *SQLVehicleRepository) Create(ctx context.Context, v domain.Vehicle) (int64, error) {
	query := `
	INSERT INTO vehicles (depot_id, capacity_kg, driver_name)
	VALUES ($1, $2, $3)
	RETURNING id;
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, v.DepotID, v.CapacityKg, v.DriverName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vehicle: insert: %w", err)
	}
	return id, nil
}

func (r *SQLVehicleRepository) GetByID(ctx context.Context, id int64) (domain.Vehicle, error) {
	query := `
	SELECT id, depot_id, capacity_kg, driver_name
	FROM vehicles
	WHERE id = $1;
	`

	var v domain.Vehicle
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.DepotID, &v.CapacityKg, &v.DriverName)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, fmt.Errorf("get vehicle %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("get vehicle %d: scan row: %w", id, err)
	}
	return v, nil
}

// GetByIDs returns the vehicles that exist, reordered to match the request.
// Unknown ids are skipped so a stale reference cannot fail a whole job.
func (r *SQLVehicleRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Vehicle, error) {
	if len(ids) == 0 {
		return []domain.Vehicle{}, nil
	}

	query := `
	SELECT id, depot_id, capacity_kg, driver_name
	FROM vehicles
	WHERE id = ANY($1::bigint[]);
	`

	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.Vehicle, len(ids))
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.DepotID, &v.CapacityKg, &v.DriverName); err != nil {
			return nil, fmt.Errorf("get vehicles: scan row: %w", err)
		}
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get vehicles: row iteration: %w", err)
	}

	out := make([]domain.Vehicle, 0, len(byID))
	emitted := make(map[int64]bool, len(byID))
	for _, id := range ids {
		if v, ok := byID[id]; ok && !emitted[id] {
			out = append(out, v)
			emitted[id] = true
		}
	}
	return out, nil
}

func (r *SQLVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `
	SELECT id, depot_id, capacity_kg, driver_name
	FROM vehicles
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.DepotID, &v.CapacityKg, &v.DriverName); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
