package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// Postgres-backed implementation of the DepotRepository port.
type SQLDepotRepository struct{ DB *sql.DB }

func NewSQLDepotRepository(db *sql.DB) *SQLDepotRepository {
	return &SQLDepotRepository{DB: db}
}

func (r *SQLDepotRepository) Create(ctx context.Context, d domain.Depot) (int64, error) {
	query := `
	INSERT INTO depots (name, lat, lng, open_time, close_time)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, d.Name, d.Lat, d.Lng, d.OpenTime, d.CloseTime).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create depot: insert: %w", err)
	}
	return id, nil
}

func (r *SQLDepotRepository) GetByID(ctx context.Context, id int64) (domain.Depot, error) {
	query := `
	SELECT id, name, lat, lng, open_time, close_time
	FROM depots
	WHERE id = $1;
	`

	var d domain.Depot
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.Name, &d.Lat, &d.Lng, &d.OpenTime, &d.CloseTime)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Depot{}, fmt.Errorf("get depot %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Depot{}, fmt.Errorf("get depot %d: scan row: %w", id, err)
	}
	return d, nil
}
