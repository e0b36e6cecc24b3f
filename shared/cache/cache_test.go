package cache_test

import (
	"context"
	"errors"
	"shareit/infras/otel/mocks"
	"shareit/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), s
}

func TestRedisCache(t *testing.T) {
	c, s := newCache(t)
	ctx := context.Background()

	t.Run("SaveAndGetStruct", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "user:get:1", userName{ID: 1, Name: "Alice"}, 60))

		var got userName
		require.NoError(t, c.Get(ctx, "user:get:1", &got))
		assert.Equal(t, userName{ID: 1, Name: "Alice"}, got)
		assert.Equal(t, 60*time.Second, s.TTL("user:get:1"))
	})

	t.Run("SaveAndGetString", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "raw", "value", 10))

		var got string
		require.NoError(t, c.Get(ctx, "raw", &got))
		assert.Equal(t, "value", got)
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		var got userName
		err := c.Get(ctx, "user:get:404", &got)
		require.Error(t, err)
		assert.True(t, errors.Is(err, cache.Nil))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "user:get:2", userName{ID: 2}, 60))
		require.NoError(t, c.Delete(ctx, "user:get:2"))
		assert.False(t, s.Exists("user:get:2"))
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "user:gets:a", "1", 60))
		require.NoError(t, c.Save(ctx, "user:gets:b", "2", 60))
		require.NoError(t, c.Save(ctx, "item:gets:a", "3", 60))

		require.NoError(t, c.Clear(ctx, "user:gets:*"))

		assert.False(t, s.Exists("user:gets:a"))
		assert.False(t, s.Exists("user:gets:b"))
		assert.True(t, s.Exists("item:gets:a"))
	})

	t.Run("Incr", func(t *testing.T) {
		count, err := c.Incr(ctx, "limiter:1.2.3.4", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 30*time.Second, s.TTL("limiter:1.2.3.4"))

		count, err = c.Incr(ctx, "limiter:1.2.3.4", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		s.FastForward(31 * time.Second)

		count, err = c.Incr(ctx, "limiter:1.2.3.4", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
