package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keeps the slot under a single Redis key with no expiry.
type Redis struct {
	name   string
	key    string
	client redis.UniversalClient
}

// NewRedis returns a slot stored at key prefix+name.
func NewRedis(client redis.UniversalClient, prefix, name string) *Redis {
	return &Redis{name: name, key: prefix + name, client: client}
}

func (r *Redis) Name() string { return r.name }

// Key returns the Redis key holding the slot.
func (r *Redis) Key() string { return r.key }

func (r *Redis) Get(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return b, nil
}

func (r *Redis) Put(ctx context.Context, value []byte) error {
	if err := r.client.Set(ctx, r.key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
