package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Stop()

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set(ctx, "weather:52.5200:13.4050:celsius", []byte(`{"temperature":21.5}`), 5*time.Minute)

		data, found := cache.Get(ctx, "weather:52.5200:13.4050:celsius")
		assert.True(t, found)
		assert.Equal(t, []byte(`{"temperature":21.5}`), data)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, found := cache.Get(ctx, "weather:0.0000:0.0000:celsius")
		assert.False(t, found)
	})

	t.Run("NilValueIgnored", func(t *testing.T) {
		cache.Set(ctx, "nil-key", nil, time.Minute)
		_, found := cache.Get(ctx, "nil-key")
		assert.False(t, found)
	})

	t.Run("Expiration", func(t *testing.T) {
		cache.Set(ctx, "ttl-key", []byte("value"), 50*time.Millisecond)

		_, found := cache.Get(ctx, "ttl-key")
		assert.True(t, found)

		time.Sleep(100 * time.Millisecond)

		_, found = cache.Get(ctx, "ttl-key")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set(ctx, "del-key", []byte("value"), time.Minute)
		cache.Delete(ctx, "del-key")

		_, found := cache.Get(ctx, "del-key")
		assert.False(t, found)
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Set(ctx, "a", []byte("1"), time.Minute)
		cache.Set(ctx, "b", []byte("2"), time.Minute)
		cache.Clear(ctx)

		_, foundA := cache.Get(ctx, "a")
		_, foundB := cache.Get(ctx, "b")
		assert.False(t, foundA)
		assert.False(t, foundB)
	})
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	cache, err := NewRedisCache(&RedisCacheConfig{
		Addr:         mr.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, cache.Close()) }()

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set(ctx, "airquality:48.8566:2.3522", []byte(`{"european_aqi":32}`), 30*time.Minute)

		data, found := cache.Get(ctx, "airquality:48.8566:2.3522")
		assert.True(t, found)
		assert.Equal(t, []byte(`{"european_aqi":32}`), data)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, found := cache.Get(ctx, "missing")
		assert.False(t, found)
	})

	t.Run("Expiration", func(t *testing.T) {
		cache.Set(ctx, "ttl-key", []byte("value"), time.Minute)
		mr.FastForward(2 * time.Minute)

		_, found := cache.Get(ctx, "ttl-key")
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set(ctx, "del-key", []byte("value"), time.Minute)
		cache.Delete(ctx, "del-key")

		_, found := cache.Get(ctx, "del-key")
		assert.False(t, found)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		c, err := NewFromConfig(&config.CacheConfig{Type: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCache{}, c)
		c.(*MemoryCache).Stop()
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := NewFromConfig(&config.CacheConfig{
			Type:        "redis",
			RedisAddr:   mr.Addr(),
			DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1,
		})
		require.NoError(t, err)
		assert.IsType(t, &RedisCache{}, c)
	})

	t.Run("RedisUnreachable", func(t *testing.T) {
		_, err := NewFromConfig(&config.CacheConfig{
			Type:        "redis",
			RedisAddr:   "127.0.0.1:1",
			DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1,
		})
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewFromConfig(&config.CacheConfig{Type: "tarantool"})
		assert.Error(t, err)
	})
}
