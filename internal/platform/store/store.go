// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinedex/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner

	// ES is the document search seam, nil when disabled
	ES Search

	// RDS is the cache seam, nil when disabled
	RDS Cache
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Hit is one search hit with its raw document source
type Hit struct {
	ID     string
	Source json.RawMessage
}

// SearchResult is one page of hits plus the total match count
type SearchResult struct {
	Total int64
	Hits  []Hit
}

// Doc is a document staged for a bulk write
type Doc struct {
	ID   string
	Body []byte
}

// BulkStats summarizes one bulk write
// Reason carries the first item-level rejection when Failed > 0
type BulkStats struct {
	Indexed int64
	Failed  int64
	Reason  string
}

// Search is the seam for the document engine
type Search interface {
	EnsureIndex(ctx context.Context, index string, mapping []byte) error
	Bulk(ctx context.Context, index string, docs []Doc) (BulkStats, error)
	Get(ctx context.Context, index, id string) (json.RawMessage, error)
	MGet(ctx context.Context, index string, ids []string, fields ...string) ([]json.RawMessage, error)
	Search(ctx context.Context, index string, body any) (SearchResult, error)
}

// Cache is the seam for the byte cache
// Get returns perr.ErrNotFound on a miss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgClient, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgClient
	}

	if cfg.ES.Enabled {
		esClient, err := openES(ctx, cfg, s)
		if err != nil {
			s.closePartial(ctx)
			return nil, err
		}
		s.ES = esClient
	}

	if cfg.RDS.Enabled {
		rdsClient, err := openRDS(ctx, cfg, s)
		if err != nil {
			s.closePartial(ctx)
			return nil, err
		}
		s.RDS = rdsClient
	}

	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.PG != nil {
		if p, ok := any(s.PG).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("pg: %w", err))
			}
		}
	}
	if s.ES != nil {
		if p, ok := any(s.ES).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("es: %w", err))
			}
		}
	}
	if s.RDS != nil {
		if p, ok := any(s.RDS).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("rds: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	var errs []error

	if c, ok := any(s.RDS).(interface{ Close() error }); ok && s.RDS != nil {
		if e := c.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	if c, ok := any(s.PG).(interface{ Close() error }); ok && s.PG != nil {
		if e := c.Close(); e != nil {
			errs = append(errs, e)
		}
	}

	return errors.Join(errs...)
}

// closePartial tears down whatever Open already brought up
func (s *Store) closePartial(ctx context.Context) {
	_ = s.Close(ctx)
}
