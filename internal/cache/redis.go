package cache

import (
	"context"
	"fmt"

	"task-list/internal/config"
	"task-list/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// NewClient builds a Redis client from REDIS_URL and checks it with a ping.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.PoolSize = cfg.RedisPoolSize
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize, "addr", opts.Addr)
	return client, nil
}
