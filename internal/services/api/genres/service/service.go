// Package service contains genres workflows
package service

import (
	"context"

	"cinedex/internal/modkit/cachekit"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/services/api/genres/domain"
	"cinedex/internal/services/api/genres/repo"

	"github.com/google/uuid"
)

// allKey caches the full catalog listing
const allKey = "all_genres"

// Service defines the service contract for genres
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo  repo.Repo
	cache *cachekit.Cache
}

// New creates a new genres service
func New(r repo.Repo, c *cachekit.Cache) *Svc {
	if r == nil {
		panic("genres.Service requires a non nil Repo")
	}
	if c == nil {
		panic("genres.Service requires a non nil Cache")
	}
	return &Svc{Repo: r, cache: c}
}

// All returns every genre
func (s *Svc) All(ctx context.Context) ([]domain.Genre, error) {
	var cached []domain.Genre
	if s.cache.GetJSON(ctx, allKey, &cached) {
		return cached, nil
	}

	rows, err := s.Repo.All(ctx)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("genres not found")
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("genres not found")
	}

	out := make([]domain.Genre, 0, len(rows))
	for _, g := range rows {
		out = append(out, domain.Genre{UUID: g.ID, Name: g.Name})
	}
	s.cache.PutJSON(ctx, allKey, out)
	return out, nil
}

// ByID returns one genre
func (s *Svc) ByID(ctx context.Context, genreID uuid.UUID) (*domain.Genre, error) {
	key := cachekit.Fingerprint("genre_id", genreID)
	var cached domain.Genre
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	g, err := s.Repo.ByID(ctx, genreID)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("genre not found")
		}
		return nil, err
	}

	out := domain.Genre{UUID: g.ID, Name: g.Name}
	s.cache.PutJSON(ctx, key, out)
	return &out, nil
}
