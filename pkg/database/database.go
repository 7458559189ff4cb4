// Package database provides the PostgreSQL connection pool shared by all
// bounded contexts. Repositories receive *Database and issue queries through
// Pool(); each statement runs against a single read-committed snapshot.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghuser/pricetrail/pkg/logger"
)

// Database wraps a pgxpool.Pool with project-level configuration.
type Database struct {
	pool *pgxpool.Pool
	log  logger.Logger
}

// NewPool connects to PostgreSQL at dbURL and verifies connectivity.
// Pool sizing and timeouts are tuned for a small request/response service;
// override via URL parameters (pool_max_conns etc.) when needed.
func NewPool(ctx context.Context, dbURL string, log logger.Logger) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = 10
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{pool: pool, log: log}, nil
}

// Pool returns the underlying pgxpool.Pool for query execution.
func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

// Ping checks database connectivity. Satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Close releases all pool connections. Blocks until checked-out connections
// are returned.
func (d *Database) Close() {
	d.pool.Close()
}
