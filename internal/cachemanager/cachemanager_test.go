package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "key", []string{"a", "b"}, time.Minute)
	got, ok := c.Get(ctx, "key")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "key", 1, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "key")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "a", 1, time.Minute)
	c.Set(ctx, "b", 2, time.Minute)

	c.Delete(ctx, "a")
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	_, ok = c.Get(ctx, "b")
	require.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "b")
	require.False(t, ok)
}

func TestReadThroughCache_CachesFetches(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context, input string) (string, error) {
		calls++
		return "value of " + input, nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, fetch)

	got, err := rt.Get(ctx, "k", "x", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "value of x", got)
	require.Equal(t, 1, calls)

	got, err = rt.Get(ctx, "k", "x", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "value of x", got)
	require.Equal(t, 1, calls, "second read must come from cache")
}

func TestReadThroughCache_ZeroTTLSkipsCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context, input string) (string, error) {
		calls++
		return input, nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, fetch)

	for range 3 {
		_, err := rt.Get(ctx, "k", "x", 0)
		require.NoError(t, err)
	}
	require.Equal(t, 3, calls)
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context, input string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache(cache, fetch)

	_, err := rt.Get(ctx, "k", "x", time.Minute)
	require.Error(t, err)

	got, err := rt.Get(ctx, "k", "x", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 2, calls)
}
