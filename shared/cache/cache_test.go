package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagoon/infras/otel/mocks"
	"lagoon/shared/cache"
)

func newTestCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := c.Save(ctx, "booking:get:abc", payload{Name: "test", Count: 3}, 60)
	require.NoError(t, err)

	var got payload
	err = c.Get(ctx, "booking:get:abc", &got)
	require.NoError(t, err)
	assert.Equal(t, "test", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var got string
	err := c.Get(context.Background(), "does-not-exist", &got)
	assert.Error(t, err)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "contact:get:1", "value", 60))
	require.NoError(t, c.Delete(ctx, "contact:get:1"))

	var got string
	assert.Error(t, c.Get(ctx, "contact:get:1", &got))
}

func TestRedisCache_ClearPrefix(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "booking:gets:1", "a", 60))
	require.NoError(t, c.Save(ctx, "booking:gets:2", "b", 60))
	require.NoError(t, c.Save(ctx, "contact:gets:1", "c", 60))

	require.NoError(t, c.Clear(ctx, "booking:gets:*"))

	assert.False(t, server.Exists("booking:gets:1"))
	assert.False(t, server.Exists("booking:gets:2"))
	assert.True(t, server.Exists("contact:gets:1"))
}
