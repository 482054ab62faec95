package store

import (
	"context"
	"encoding/json"
	stderrs "errors"

	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store/es"
)

// newSearchAdapter is called by openers.go to wrap an existing *es.Client
// and return the store.Search seam (single return value)
func newSearchAdapter(c *es.Client) Search {
	return &searchAdapter{inner: c}
}

// searchAdapter adapts *es.Client to the store.Search interface and
// normalizes engine errors onto perr codes so callers never branch on
// raw statuses
type searchAdapter struct {
	inner *es.Client
}

var _ Search = (*searchAdapter)(nil)

func (a *searchAdapter) EnsureIndex(ctx context.Context, index string, mapping []byte) error {
	if a == nil || a.inner == nil {
		return stderrs.New("store: nil search adapter")
	}
	return mapSearchErr(a.inner.EnsureIndex(ctx, index, mapping), "ensure index "+index)
}

func (a *searchAdapter) Bulk(ctx context.Context, index string, docs []Doc) (BulkStats, error) {
	if a == nil || a.inner == nil {
		return BulkStats{}, stderrs.New("store: nil search adapter")
	}
	in := make([]es.Doc, len(docs))
	for i, d := range docs {
		in[i] = es.Doc{ID: d.ID, Body: d.Body}
	}
	st, err := a.inner.Bulk(ctx, index, in)
	out := BulkStats{Indexed: st.Indexed, Failed: st.Failed, Reason: st.Reason}
	return out, mapSearchErr(err, "bulk "+index)
}

func (a *searchAdapter) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	if a == nil || a.inner == nil {
		return nil, stderrs.New("store: nil search adapter")
	}
	src, err := a.inner.Get(ctx, index, id)
	if err != nil {
		return nil, mapSearchErr(err, "get "+index)
	}
	return src, nil
}

func (a *searchAdapter) MGet(ctx context.Context, index string, ids []string, fields ...string) ([]json.RawMessage, error) {
	if a == nil || a.inner == nil {
		return nil, stderrs.New("store: nil search adapter")
	}
	srcs, err := a.inner.MGet(ctx, index, ids, fields...)
	if err != nil {
		return nil, mapSearchErr(err, "mget "+index)
	}
	return srcs, nil
}

func (a *searchAdapter) Search(ctx context.Context, index string, body any) (SearchResult, error) {
	if a == nil || a.inner == nil {
		return SearchResult{}, stderrs.New("store: nil search adapter")
	}
	res, err := a.inner.Search(ctx, index, body)
	if err != nil {
		return SearchResult{}, mapSearchErr(err, "search "+index)
	}
	out := SearchResult{Total: res.Total, Hits: make([]Hit, len(res.Hits))}
	for i, h := range res.Hits {
		out.Hits[i] = Hit{ID: h.ID, Source: h.Source}
	}
	return out, nil
}

// Ping verifies connectivity with the engine
func (a *searchAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return stderrs.New("store: nil search adapter")
	}
	return mapSearchErr(a.inner.Ping(ctx), "ping")
}

// mapSearchErr translates driver errors into project errors:
// missing docs become perr.ErrNotFound, engine statuses map by code,
// transport failures keep their transient classification
func mapSearchErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, es.ErrNotFound) {
		return perr.ErrNotFound
	}
	var se *es.StatusError
	if stderrs.As(err, &se) {
		return perr.FromSearchStatus(se.Status, op)
	}
	return perr.FromSearch(err, op)
}
