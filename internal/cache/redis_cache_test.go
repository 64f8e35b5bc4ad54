package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client, slog.New(slog.DiscardHandler)), mr
}

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisCacheSetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	in := cachedValue{Name: "passage", Count: 3}
	require.NoError(t, cache.Set(ctx, "k1", in, time.Minute))

	var out cachedValue
	require.NoError(t, cache.Get(ctx, "k1", &out))
	assert.Equal(t, in, out)

	assert.True(t, mr.Exists("k1"))
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	var out cachedValue
	err := cache.Get(context.Background(), "missing", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k1", cachedValue{Name: "x"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out cachedValue
	err := cache.Get(ctx, "k1", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k1", cachedValue{}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "k1"))
	assert.False(t, mr.Exists("k1"))

	// Deleting an absent key is not an error.
	assert.NoError(t, cache.Delete(ctx, "k1"))
}

func TestRedisCacheDeletePattern(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "passages:latest:1", cachedValue{}, time.Minute))
	require.NoError(t, cache.Set(ctx, "passages:latest:2", cachedValue{}, time.Minute))
	require.NoError(t, cache.Set(ctx, "pending_result:abc", cachedValue{}, time.Minute))

	require.NoError(t, cache.DeletePattern(ctx, "passages:latest:*"))

	assert.False(t, mr.Exists("passages:latest:1"))
	assert.False(t, mr.Exists("passages:latest:2"))
	assert.True(t, mr.Exists("pending_result:abc"))

	// No matches is a no-op.
	assert.NoError(t, cache.DeletePattern(ctx, "nothing:*"))
}
