// Package cachemanager provides a small generic caching layer used for
// autocomplete lookup results.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the interface the rest of the app caches through.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}
