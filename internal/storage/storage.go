// Package storage opens the task slot selected by STORAGE_BACKEND.
package storage

import (
	"context"
	"fmt"
	"io"

	"task-list/internal/cache"
	"task-list/internal/config"
	"task-list/internal/database"
	"task-list/internal/slot"
	"task-list/pkg/logger"
)

// Open builds the slot for cfg.StorageBackend and returns a func releasing its connections.
func Open(ctx context.Context, cfg *config.Config) (slot.Slot, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return slot.NewMemory(cfg.SlotName), func() {}, nil
	case config.BackendFile:
		s, err := slot.NewFile(cfg.DataDir, cfg.SlotName)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case config.BackendRedis:
		client, err := cache.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return slot.NewRedis(client, cfg.RedisKeyPrefix, cfg.SlotName), closer(ctx, "redis", client), nil
	case config.BackendPostgres:
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateOrCreateSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return slot.NewPostgres(db, cfg.SlotName), closer(ctx, "postgres", db), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

func closer(ctx context.Context, name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn(ctx, "Closing connection failed", "backend", name, "error", err)
		}
	}
}
