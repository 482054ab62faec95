// Package repo provides persons index access plus the movie lookups a
// filmography needs
package repo

import (
	"context"
	"encoding/json"

	"cinedex/internal/core/catalog"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store"

	"github.com/google/uuid"
)

// FilmRow is the projection a filmography reads from a movie doc
type FilmRow struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	IMDBRating *float64  `json:"imdb_rating"`
}

// Repo defines the index reads the persons service needs
type Repo interface {
	ByID(ctx context.Context, id uuid.UUID) (*catalog.Person, error)
	NameSearch(ctx context.Context, name string, from, size int) ([]catalog.Person, error)
	FilmSummaries(ctx context.Context, ids []uuid.UUID) ([]FilmRow, error)
}

// ES implements the Repo interface over the search seam
type ES struct {
	es      store.Search
	persons string
	movies  string
}

// NewES builds the reader over the persons and movies indexes
func NewES(es store.Search, moviesIndex string) *ES {
	if es == nil {
		panic("persons.Repo requires a non nil Search")
	}
	if moviesIndex == "" {
		moviesIndex = catalog.MoviesIndex
	}
	return &ES{es: es, persons: catalog.PersonsIndex, movies: moviesIndex}
}

// ByID fetches one person document
func (r *ES) ByID(ctx context.Context, id uuid.UUID) (*catalog.Person, error) {
	src, err := r.es.Get(ctx, r.persons, id.String())
	if err != nil {
		return nil, err
	}
	var p catalog.Person
	if err := json.Unmarshal(src, &p); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "persons: decode person %s", id)
	}
	return &p, nil
}

// NameSearch pages persons matching full_name with AUTO fuzziness
func (r *ES) NameSearch(ctx context.Context, name string, from, size int) ([]catalog.Person, error) {
	body := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"full_name": map[string]any{"query": name, "fuzziness": "AUTO"},
			},
		},
		"from": from,
		"size": size,
	}
	res, err := r.es.Search(ctx, r.persons, body)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Person, 0, len(res.Hits))
	for _, h := range res.Hits {
		var p catalog.Person
		if err := json.Unmarshal(h.Source, &p); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "persons: decode person %s", h.ID)
		}
		out = append(out, p)
	}
	return out, nil
}

// FilmSummaries multi-gets movie docs by id, projecting the filmography
// fields. Ids missing from the index are dropped, not errors
func (r *ES) FilmSummaries(ctx context.Context, ids []uuid.UUID) ([]FilmRow, error) {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = id.String()
	}
	srcs, err := r.es.MGet(ctx, r.movies, ss, "id", "title", "imdb_rating")
	if err != nil {
		return nil, err
	}
	out := make([]FilmRow, 0, len(srcs))
	for _, src := range srcs {
		var f FilmRow
		if err := json.Unmarshal(src, &f); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "persons: decode movie doc")
		}
		out = append(out, f)
	}
	return out, nil
}
