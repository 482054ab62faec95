// Package repo provides movies index access for films
package repo

import (
	"context"
	"encoding/json"

	"cinedex/internal/core/catalog"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store"

	"github.com/google/uuid"
)

// Summary is the projection the list endpoints read from a movie doc
type Summary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	IMDBRating *float64  `json:"imdb_rating"`
}

// Repo defines the index reads the films service needs
type Repo interface {
	ByID(ctx context.Context, id uuid.UUID) (*catalog.Movie, error)
	Sorted(ctx context.Context, field, order, genre string, from, size int) ([]Summary, error)
	TitleSearch(ctx context.Context, title string, from, size int) ([]Summary, error)
	GenreNamed(ctx context.Context, name string) (*catalog.Genre, error)
	GenreByID(ctx context.Context, id uuid.UUID) (*catalog.Genre, error)
}

// ES implements the Repo interface over the search seam
type ES struct {
	es     store.Search
	movies string
	genres string
}

// NewES builds the reader over the movies and genres indexes
func NewES(es store.Search, moviesIndex string) *ES {
	if es == nil {
		panic("films.Repo requires a non nil Search")
	}
	if moviesIndex == "" {
		moviesIndex = catalog.MoviesIndex
	}
	return &ES{es: es, movies: moviesIndex, genres: catalog.GenresIndex}
}

// ByID fetches one movie document
func (r *ES) ByID(ctx context.Context, id uuid.UUID) (*catalog.Movie, error) {
	src, err := r.es.Get(ctx, r.movies, id.String())
	if err != nil {
		return nil, err
	}
	var m catalog.Movie
	if err := json.Unmarshal(src, &m); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "films: decode movie %s", id)
	}
	return &m, nil
}

// Sorted pages movies ordered by field, optionally filtered by genre name
func (r *ES) Sorted(ctx context.Context, field, order, genre string, from, size int) ([]Summary, error) {
	var q any = map[string]any{"match_all": map[string]any{}}
	if genre != "" {
		q = map[string]any{"match": map[string]any{"genre": genre}}
	}
	body := map[string]any{
		"query": q,
		"sort":  []any{map[string]any{field: order}},
		"from":  from,
		"size":  size,
	}
	return r.summaries(ctx, body)
}

// TitleSearch pages movies matching title with AUTO fuzziness
func (r *ES) TitleSearch(ctx context.Context, title string, from, size int) ([]Summary, error) {
	body := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"title": map[string]any{"query": title, "fuzziness": "AUTO"},
			},
		},
		"from": from,
		"size": size,
	}
	return r.summaries(ctx, body)
}

// GenreNamed resolves a genre name carried on a movie doc to its {id, name}
func (r *ES) GenreNamed(ctx context.Context, name string) (*catalog.Genre, error) {
	body := map[string]any{
		"query": map[string]any{"match_phrase": map[string]any{"name": name}},
		"size":  1,
	}
	res, err := r.es.Search(ctx, r.genres, body)
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, perr.ErrNotFound
	}
	var g catalog.Genre
	if err := json.Unmarshal(res.Hits[0].Source, &g); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "films: decode genre %q", name)
	}
	return &g, nil
}

// GenreByID fetches one genre document
func (r *ES) GenreByID(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	src, err := r.es.Get(ctx, r.genres, id.String())
	if err != nil {
		return nil, err
	}
	var g catalog.Genre
	if err := json.Unmarshal(src, &g); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "films: decode genre %s", id)
	}
	return &g, nil
}

func (r *ES) summaries(ctx context.Context, body any) ([]Summary, error) {
	res, err := r.es.Search(ctx, r.movies, body)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(res.Hits))
	for _, h := range res.Hits {
		var s Summary
		if err := json.Unmarshal(h.Source, &s); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "films: decode movie %s", h.ID)
		}
		out = append(out, s)
	}
	return out, nil
}
