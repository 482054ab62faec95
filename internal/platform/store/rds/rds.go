// Package rds provides a thin Redis client used as the query cache.
// Values are opaque bytes; key shape and TTL policy belong to callers
package rds

import (
	"context"
	stderrs "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports a key absent from the cache
var ErrMiss = stderrs.New("rds: cache miss")

// Config configures connectivity and pool sizing
type Config struct {
	Addr     string
	Password string
	DB       int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	PoolSize     int
	MinIdleConns int
}

// Client wraps go-redis
type Client struct {
	rdb *redis.Client
}

// Open builds a Client; connectivity is not verified here, use Ping
func Open(cfg Config) *Client {
	opt := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,

		DialTimeout:  orDur(cfg.DialTimeout, 5*time.Second),
		ReadTimeout:  orDur(cfg.ReadTimeout, 3*time.Second),
		WriteTimeout: orDur(cfg.WriteTimeout, 3*time.Second),

		PoolSize:     orInt(cfg.PoolSize, 10),
		MinIdleConns: orInt(cfg.MinIdleConns, 2),
	}
	return &Client{rdb: redis.NewClient(opt)}
}

// Ping verifies the server answers
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("rds: ping: %w", err)
	}
	return nil
}

// Get returns the value at key, ErrMiss when absent
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if stderrs.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("rds: get %s: %w", key, err)
	}
	return b, nil
}

// Set stores val at key for ttl; ttl <= 0 means no expiry
func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("rds: set %s: %w", key, err)
	}
	return nil
}

// Close releases the pool
func (c *Client) Close() error { return c.rdb.Close() }

func orDur(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
