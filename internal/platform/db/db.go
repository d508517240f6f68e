package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Open connects a Postgres pool through the pgx stdlib driver and verifies
// the connection before returning. Pool limits are sized for the API and
// worker binaries, which hold few concurrent transactions each.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: open postgres database: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("open db: verify postgres connection: %w", err)
	}

	return pool, nil
}
