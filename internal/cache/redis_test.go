package cache

import (
	"context"
	"testing"

	"task-list/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{RedisURL: "redis://" + mr.Addr() + "/0", RedisPoolSize: 2}

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, 2, client.Options().PoolSize)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Config{RedisURL: "http://nope"})
	assert.Error(t, err)
}
