package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"task-list/internal/config"
	"task-list/pkg/logger"

	_ "github.com/lib/pq"
)

// ErrNoDatabaseURL is returned when the postgres backend is selected without DATABASE_URL.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is not set")

const schema = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Open returns a connection pool for DATABASE_URL and verifies it with a ping.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBPoolSize)
	db.SetMaxIdleConns(max(cfg.DBPoolSize/2, 1))
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	return db, nil
}

// MigrateOrCreateSchema creates the kv_slots table when it does not exist.
func MigrateOrCreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}
	return nil
}
