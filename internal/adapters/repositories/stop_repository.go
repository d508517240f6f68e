package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Postgres-backed implementation of the StopRepository port.
type SQLStopRepository struct{ DB *sql.DB }

func NewSQLStopRepository(db *sql.DB) *SQLStopRepository {
	return &SQLStopRepository{DB: db}
}

func (r *SQLStopRepository) Create(ctx context.Context, s domain.Stop) (int64, error) {
	status := s.Status
	if status == "" {
		status = domain.StopPending
	}

	query := `
	INSERT INTO stops (address, lat, lng, earliest_time, latest_time, package_weight_kg, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id;
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		s.Address, s.Lat, s.Lng, s.EarliestTime, s.LatestTime, s.PackageWeightKg, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create stop: insert: %w", err)
	}
	return id, nil
}

func (r *SQLStopRepository) GetByID(ctx context.Context, id int64) (domain.Stop, error) {
	query := `
	SELECT id, address, lat, lng, earliest_time, latest_time, package_weight_kg, status
	FROM stops
	WHERE id = $1;
	`

	var s domain.Stop
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Address, &s.Lat, &s.Lng,
		&s.EarliestTime, &s.LatestTime, &s.PackageWeightKg, &s.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stop{}, fmt.Errorf("get stop %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Stop{}, fmt.Errorf("get stop %d: scan row: %w", id, err)
	}
	return s, nil
}

// GetByIDs returns the stops that exist, reordered to match the request.
// Unknown ids are skipped, not errors; the optimizer treats missing stops as
// simply absent from the scenario.
func (r *SQLStopRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Stop, error) {
	if len(ids) == 0 {
		return []domain.Stop{}, nil
	}

	query := `
	SELECT id, address, lat, lng, earliest_time, latest_time, package_weight_kg, status
	FROM stops
	WHERE id = ANY($1::bigint[]);
	`

	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get stops: query stops table: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.Stop, len(ids))
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(
			&s.ID, &s.Address, &s.Lat, &s.Lng,
			&s.EarliestTime, &s.LatestTime, &s.PackageWeightKg, &s.Status,
		); err != nil {
			return nil, fmt.Errorf("get stops: scan row: %w", err)
		}
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get stops: row iteration: %w", err)
	}

	out := make([]domain.Stop, 0, len(byID))
	emitted := make(map[int64]bool, len(byID))
	for _, id := range ids {
		if s, ok := byID[id]; ok && !emitted[id] {
			out = append(out, s)
			emitted[id] = true
		}
	}
	return out, nil
}

func (r *SQLStopRepository) List(ctx context.Context) ([]domain.Stop, error) {
	query := `
	SELECT id, address, lat, lng, earliest_time, latest_time, package_weight_kg, status
	FROM stops
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(
			&s.ID, &s.Address, &s.Lat, &s.Lng,
			&s.EarliestTime, &s.LatestTime, &s.PackageWeightKg, &s.Status,
		); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
