package store

import (
	"context"
	stderrs "errors"
	"time"

	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store/rds"
)

// newCacheAdapter is called by openers.go to wrap an existing *rds.Client
// and return the store.Cache seam (single return value)
func newCacheAdapter(c *rds.Client) Cache {
	return &cacheAdapter{inner: c}
}

// cacheAdapter adapts *rds.Client to the store.Cache interface
// misses surface as perr.ErrNotFound like every other read seam
type cacheAdapter struct {
	inner *rds.Client
}

var _ Cache = (*cacheAdapter)(nil)

func (a *cacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if a == nil || a.inner == nil {
		return nil, stderrs.New("store: nil cache adapter")
	}
	b, err := a.inner.Get(ctx, key)
	if err != nil {
		if stderrs.Is(err, rds.ErrMiss) {
			return nil, perr.ErrNotFound
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "cache get")
	}
	return b, nil
}

func (a *cacheAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if a == nil || a.inner == nil {
		return stderrs.New("store: nil cache adapter")
	}
	if err := a.inner.Set(ctx, key, val, ttl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "cache set")
	}
	return nil
}

// Ping verifies connectivity with the cache
func (a *cacheAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return stderrs.New("store: nil cache adapter")
	}
	return a.inner.Ping(ctx)
}

// Close releases the underlying pool
func (a *cacheAdapter) Close() error {
	if a == nil || a.inner == nil {
		return nil
	}
	return a.inner.Close()
}
