// Package service contains films workflows
package service

import (
	"context"
	"strings"

	"cinedex/internal/core/catalog"
	"cinedex/internal/modkit/cachekit"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/logger"
	"cinedex/internal/services/api/films/domain"
	"cinedex/internal/services/api/films/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for films
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo  repo.Repo
	cache *cachekit.Cache
}

// New creates a new films service
func New(r repo.Repo, c *cachekit.Cache) *Svc {
	if r == nil {
		panic("films.Service requires a non nil Repo")
	}
	if c == nil {
		panic("films.Service requires a non nil Cache")
	}
	return &Svc{Repo: r, cache: c}
}

// ByID returns one film with its credits and resolved genre refs
func (s *Svc) ByID(ctx context.Context, filmID uuid.UUID) (*domain.Film, error) {
	key := cachekit.Fingerprint("film_id", filmID)
	var cached domain.Film
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	m, err := s.Repo.ByID(ctx, filmID)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("film not found")
		}
		return nil, err
	}

	film := domain.Film{
		UUID:        m.ID,
		Title:       m.Title,
		IMDBRating:  m.IMDBRating,
		Description: m.Description,
		Actors:      refs(m.Actors),
		Writers:     refs(m.Writers),
		Directors:   refs(m.Directors),
		Genre:       make([]domain.GenreRef, 0, len(m.Genre)),
	}
	for _, name := range m.Genre {
		g, err := s.Repo.GenreNamed(ctx, name)
		if err != nil {
			if perr.IsNotFound(err) {
				// the genres index lags the movies index until its sweep lands
				logger.C(ctx).Debug().Str("genre", name).Msg("films: unresolved genre name skipped")
				continue
			}
			return nil, err
		}
		film.Genre = append(film.Genre, domain.GenreRef{UUID: g.ID, Name: g.Name})
	}

	s.cache.PutJSON(ctx, key, film)
	return &film, nil
}

// BySort pages films ordered by rating, optionally narrowed to one genre
func (s *Svc) BySort(ctx context.Context, q domain.SortQuery) ([]domain.FilmSummary, error) {
	key := cachekit.Fingerprint("sort", q.Sort, q.PageSize, q.PageNumber, q.GenreID)
	var cached []domain.FilmSummary
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	field, order := q.Sort, "asc"
	if strings.HasPrefix(field, "-") {
		field, order = field[1:], "desc"
	}

	genre := ""
	if q.GenreID != nil {
		g, err := s.Repo.GenreByID(ctx, *q.GenreID)
		if err != nil {
			if perr.IsNotFound(err) {
				return nil, perr.NotFoundf("film not found")
			}
			return nil, err
		}
		genre = g.Name
	}

	rows, err := s.Repo.Sorted(ctx, field, order, genre, offset(q.PageSize, q.PageNumber), q.PageSize)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("film not found")
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("film not found")
	}

	out := summaries(rows)
	s.cache.PutJSON(ctx, key, out)
	return out, nil
}

// ByQuery searches film titles with AUTO fuzziness. Results are not cached
func (s *Svc) ByQuery(ctx context.Context, q domain.SearchQuery) ([]domain.FilmSummary, error) {
	rows, err := s.Repo.TitleSearch(ctx, catalog.FoldQuery(q.Title), offset(q.PageSize, q.PageNumber), q.PageSize)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("films not found")
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("films not found")
	}
	return summaries(rows), nil
}

func offset(size, number int) int { return size * (number - 1) }

func refs(in []catalog.PersonRef) []domain.PersonRef {
	out := make([]domain.PersonRef, 0, len(in))
	for _, p := range in {
		out = append(out, domain.PersonRef{UUID: p.ID, FullName: p.Name})
	}
	return out
}

func summaries(rows []repo.Summary) []domain.FilmSummary {
	out := make([]domain.FilmSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.FilmSummary{UUID: r.ID, Title: r.Title, IMDBRating: r.IMDBRating})
	}
	return out
}
