// Package load writes folded documents into the search engine in bulk
package load

import (
	"context"
	"encoding/json"
	"io"

	"cinedex/internal/platform/logger"
	"cinedex/internal/platform/store"
)

// Loader bulk-writes document streams into one index
type Loader struct {
	es    store.Search
	index string
	batch int
}

// New builds a loader for index writing chunks of batch documents
func New(es store.Search, index string, batch int) *Loader {
	if es == nil {
		panic("load.Loader requires a non nil Search")
	}
	if batch <= 0 {
		batch = 1000
	}
	return &Loader{es: es, index: index, batch: batch}
}

// Index returns the target index name
func (l *Loader) Index() string { return l.index }

// EnsureIndex creates the target index from mapping when absent.
// An index that already exists is left untouched
func (l *Loader) EnsureIndex(ctx context.Context, mapping []byte) error {
	return l.es.EnsureIndex(ctx, l.index, mapping)
}

// Run drains next into the index in chunks and returns totals.
// Item-level rejections are logged and skipped, the stream keeps going
func Run[T any](ctx context.Context, l *Loader, next func(context.Context) (T, error), id func(T) string) (store.BulkStats, error) {
	var total store.BulkStats
	docs := make([]store.Doc, 0, l.batch)

	flush := func() error {
		if len(docs) == 0 {
			return nil
		}
		st, err := l.es.Bulk(ctx, l.index, docs)
		total.Indexed += st.Indexed
		total.Failed += st.Failed
		if total.Reason == "" {
			total.Reason = st.Reason
		}
		docs = docs[:0]
		if err != nil {
			return err
		}
		if st.Failed > 0 {
			logger.C(ctx).Warn().
				Str("index", l.index).
				Int64("failed", st.Failed).
				Str("reason", st.Reason).
				Msg("etl: bulk items rejected")
		}
		return nil
	}

	for {
		item, err := next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		body, err := json.Marshal(item)
		if err != nil {
			logger.C(ctx).Warn().Err(err).
				Str("index", l.index).
				Msg("etl: document marshal failed, skipped")
			continue
		}
		docs = append(docs, store.Doc{ID: id(item), Body: body})
		if len(docs) >= l.batch {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}
