// Package service contains persons workflows
package service

import (
	"context"

	"cinedex/internal/core/catalog"
	"cinedex/internal/modkit/cachekit"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/services/api/persons/domain"
	"cinedex/internal/services/api/persons/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for persons
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo  repo.Repo
	cache *cachekit.Cache
}

// New creates a new persons service
func New(r repo.Repo, c *cachekit.Cache) *Svc {
	if r == nil {
		panic("persons.Service requires a non nil Repo")
	}
	if c == nil {
		panic("persons.Service requires a non nil Cache")
	}
	return &Svc{Repo: r, cache: c}
}

// ByID returns one person with their per-film role sets
func (s *Svc) ByID(ctx context.Context, personID uuid.UUID) (*domain.Person, error) {
	key := cachekit.Fingerprint("person_id", personID)
	var cached domain.Person
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.Repo.ByID(ctx, personID)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("person not found")
		}
		return nil, err
	}

	out := person(*p)
	s.cache.PutJSON(ctx, key, out)
	return &out, nil
}

// Films returns the filmography rows for one person. A person with no film
// refs is absent here, the listing never renders empty
func (s *Svc) Films(ctx context.Context, personID uuid.UUID) ([]domain.PersonFilm, error) {
	key := cachekit.Fingerprint("person_films", personID)
	var cached []domain.PersonFilm
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	p, err := s.Repo.ByID(ctx, personID)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("persons film not found")
		}
		return nil, err
	}
	if len(p.Films) == 0 {
		return nil, perr.NotFoundf("persons film not found")
	}

	ids := make([]uuid.UUID, 0, len(p.Films))
	for _, f := range p.Films {
		ids = append(ids, f.ID)
	}
	rows, err := s.Repo.FilmSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("persons film not found")
	}

	out := make([]domain.PersonFilm, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.PersonFilm{UUID: r.ID, Title: r.Title, IMDBRating: r.IMDBRating})
	}
	s.cache.PutJSON(ctx, key, out)
	return out, nil
}

// Search matches persons by full name with AUTO fuzziness. Results are not
// cached
func (s *Svc) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Person, error) {
	from := q.PageSize * (q.PageNumber - 1)
	rows, err := s.Repo.NameSearch(ctx, catalog.FoldQuery(q.Name), from, q.PageSize)
	if err != nil {
		if perr.IsNotFound(err) {
			return nil, perr.NotFoundf("person not found")
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, perr.NotFoundf("person not found")
	}

	out := make([]domain.Person, 0, len(rows))
	for _, p := range rows {
		out = append(out, person(p))
	}
	return out, nil
}

func person(p catalog.Person) domain.Person {
	out := domain.Person{
		UUID:     p.ID,
		FullName: p.FullName,
		Films:    make([]domain.FilmRoles, 0, len(p.Films)),
	}
	for _, f := range p.Films {
		out.Films = append(out.Films, domain.FilmRoles{UUID: f.ID, Roles: f.Roles})
	}
	return out
}
