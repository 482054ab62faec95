// Package cachekit provides cache-aside helpers over the platform cache seam
package cachekit

import (
	"context"
	"encoding/json"
	"time"

	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/logger"
	"cinedex/internal/platform/store"
)

// DefaultTTL applies when a module does not configure CACHE_TTL
const DefaultTTL = 300 * time.Second

// Cache is a typed cache-aside collaborator over the byte cache seam
// a nil inner cache degrades to always-miss so modules never nil check
type Cache struct {
	inner store.Cache
	ttl   time.Duration
}

// New builds a Cache with the given ttl, non-positive ttl falls back to DefaultTTL
func New(inner store.Cache, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{inner: inner, ttl: ttl}
}

// TTL reports the configured entry lifetime
func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// GetJSON loads key into v and reports whether it was a hit
// cache failures are logged and treated as misses
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil || c.inner == nil {
		return false
	}
	raw, err := c.inner.Get(ctx, key)
	if err != nil {
		if !perr.IsNotFound(err) {
			logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cache entry decode failed")
		return false
	}
	return true
}

// PutJSON stores v under key for the configured ttl
// cache failures are logged and swallowed so reads still succeed
func (c *Cache) PutJSON(ctx context.Context, key string, v any) {
	if c == nil || c.inner == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cache entry encode failed")
		return
	}
	if err := c.inner.Set(ctx, key, raw, c.ttl); err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
