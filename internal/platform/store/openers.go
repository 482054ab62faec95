package store

import (
	"context"
	"fmt"
	"time"

	"cinedex/internal/platform/store/es"
	"cinedex/internal/platform/store/pg"
	"cinedex/internal/platform/store/rds"
)

// Connection guardrails shared by all openers: ping with retry/backoff so a
// container that boots before its backends does not flap
const (
	guardMaxAttempts    = 20
	guardPingTimeout    = 3 * time.Second
	guardBackoffStart   = 150 * time.Millisecond
	guardBackoffCeiling = 2 * time.Second
)

// waitReady pings until the backend answers or attempts run out
func waitReady(ctx context.Context, name string, ping func(context.Context) error) error {
	var lastErr error
	backoff := guardBackoffStart
	for i := 0; i < guardMaxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, guardPingTimeout)
		lastErr = ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < guardBackoffCeiling {
			backoff *= 2
			if backoff > guardBackoffCeiling {
				backoff = guardBackoffCeiling
			}
		}
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", name, guardMaxAttempts, lastErr)
}

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// ping the pool directly so no SQL trace line is emitted per attempt
	if err := waitReady(ctx, "postgres", p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}

	a := newPGAdapter(p) // publish adapter only after the pool is healthy
	s.PG = a
	return a, nil
}

// openES opens the search client and verifies the cluster answers
func openES(ctx context.Context, cfg Config, _ *Store) (Search, error) {
	c, err := es.Open(es.Config{
		Addresses:     cfg.ES.Addresses,
		Username:      cfg.ES.Username,
		Password:      cfg.ES.Password,
		BulkWorkers:   cfg.ES.BulkWorkers,
		FlushBytes:    cfg.ES.FlushBytes,
		FlushInterval: cfg.ES.FlushInterval,
	})
	if err != nil {
		return nil, err
	}

	if err := waitReady(ctx, "elasticsearch", c.Ping); err != nil {
		return nil, err
	}
	return newSearchAdapter(c), nil
}

// openRDS opens the cache client and verifies the server answers
func openRDS(ctx context.Context, cfg Config, _ *Store) (Cache, error) {
	c := rds.Open(rds.Config{
		Addr:     cfg.RDS.Addr,
		Password: cfg.RDS.Password,
		DB:       cfg.RDS.DB,
	})

	if err := waitReady(ctx, "redis", c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCacheAdapter(c), nil
}
