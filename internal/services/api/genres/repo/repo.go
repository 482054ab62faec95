// Package repo provides genres index access
package repo

import (
	"context"
	"encoding/json"

	"cinedex/internal/core/catalog"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store"

	"github.com/google/uuid"
)

// allSize bounds the match_all listing, the genre catalog is small
const allSize = 1000

// Repo defines the index reads the genres service needs
type Repo interface {
	All(ctx context.Context) ([]catalog.Genre, error)
	ByID(ctx context.Context, id uuid.UUID) (*catalog.Genre, error)
}

// ES implements the Repo interface over the search seam
type ES struct {
	es    store.Search
	index string
}

// NewES builds the reader over the genres index
func NewES(es store.Search) *ES {
	if es == nil {
		panic("genres.Repo requires a non nil Search")
	}
	return &ES{es: es, index: catalog.GenresIndex}
}

// All lists every genre document
func (r *ES) All(ctx context.Context) ([]catalog.Genre, error) {
	body := map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"size":  allSize,
	}
	res, err := r.es.Search(ctx, r.index, body)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Genre, 0, len(res.Hits))
	for _, h := range res.Hits {
		var g catalog.Genre
		if err := json.Unmarshal(h.Source, &g); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "genres: decode genre %s", h.ID)
		}
		out = append(out, g)
	}
	return out, nil
}

// ByID fetches one genre document
func (r *ES) ByID(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	src, err := r.es.Get(ctx, r.index, id.String())
	if err != nil {
		return nil, err
	}
	var g catalog.Genre
	if err := json.Unmarshal(src, &g); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "genres: decode genre %s", id)
	}
	return &g, nil
}
