// Package transform folds flat extractor rows into the documents the
// search engine serves. Folds are stateful pull cursors: they emit a
// completed document whenever the group key changes and once more at end
// of stream, so grouped input yields exactly one document per key
package transform

import (
	"context"
	"io"
	"sort"

	"cinedex/internal/core/catalog"
	"cinedex/internal/platform/logger"
	"cinedex/internal/services/etl/domain"

	"github.com/google/uuid"
)

// FilmRowStream yields flat film combinations grouped by film id
type FilmRowStream interface {
	Next(ctx context.Context) (domain.FilmRow, error)
	Close()
}

// MovieFold reduces contiguous film rows to one movie document per film
type MovieFold struct {
	src FilmRowStream
	acc *movieAcc
	err error
}

// NewMovieFold builds a fold over src
func NewMovieFold(src FilmRowStream) *MovieFold {
	if src == nil {
		panic("transform.MovieFold requires a source stream")
	}
	return &MovieFold{src: src}
}

// Next returns the next completed movie, io.EOF when drained
func (f *MovieFold) Next(ctx context.Context) (catalog.Movie, error) {
	if f.err != nil {
		return catalog.Movie{}, f.err
	}
	for {
		row, err := f.src.Next(ctx)
		if err == io.EOF {
			f.err = io.EOF
			if f.acc != nil {
				out := f.acc.finish()
				f.acc = nil
				return out, nil
			}
			return catalog.Movie{}, io.EOF
		}
		if err != nil {
			f.err = err
			return catalog.Movie{}, err
		}

		if f.acc == nil {
			f.acc = newMovieAcc(row)
			f.acc.absorb(ctx, row)
			continue
		}
		if f.acc.id != row.FilmID {
			out := f.acc.finish()
			f.acc = newMovieAcc(row)
			f.acc.absorb(ctx, row)
			return out, nil
		}
		f.acc.absorb(ctx, row)
	}
}

// Close releases the source stream
func (f *MovieFold) Close() { f.src.Close() }

// movieAcc accumulates one film's combinations in sets
type movieAcc struct {
	id        uuid.UUID
	m         catalog.Movie
	actors    map[uuid.UUID]string
	writers   map[uuid.UUID]string
	directors map[uuid.UUID]string
	genres    map[string]struct{}
}

func newMovieAcc(row domain.FilmRow) *movieAcc {
	m := catalog.NewMovie(row.FilmID)
	m.Title = row.Title
	if row.Description != nil {
		m.Description = *row.Description
	}
	m.IMDBRating = row.Rating
	m.Modified = row.Modified
	return &movieAcc{
		id:        row.FilmID,
		m:         m,
		actors:    map[uuid.UUID]string{},
		writers:   map[uuid.UUID]string{},
		directors: map[uuid.UUID]string{},
		genres:    map[string]struct{}{},
	}
}

func (a *movieAcc) absorb(ctx context.Context, row domain.FilmRow) {
	if row.Genre != nil && *row.Genre != "" {
		a.genres[*row.Genre] = struct{}{}
	}
	if row.Role == nil && row.PersonID == nil {
		// film without credits, the row still carried its genre
		return
	}
	if row.Role == nil || row.PersonID == nil || row.PersonName == nil {
		logger.C(ctx).Debug().
			Str("film_id", a.id.String()).
			Msg("etl: incomplete person combination skipped")
		return
	}
	switch *row.Role {
	case catalog.RoleActor:
		a.actors[*row.PersonID] = *row.PersonName
	case catalog.RoleWriter:
		a.writers[*row.PersonID] = *row.PersonName
	case catalog.RoleDirector:
		a.directors[*row.PersonID] = *row.PersonName
	default:
		logger.C(ctx).Debug().
			Str("film_id", a.id.String()).
			Str("role", *row.Role).
			Msg("etl: unknown role skipped")
	}
}

func (a *movieAcc) finish() catalog.Movie {
	a.m.Genre = sortedSet(a.genres)
	a.m.Actors = refSet(a.actors)
	a.m.Writers = refSet(a.writers)
	a.m.Directors = refSet(a.directors)
	a.m.ActorsNames = names(a.m.Actors)
	a.m.WritersNames = names(a.m.Writers)
	a.m.DirectorsNames = names(a.m.Directors)
	return a.m
}

// refSet flattens a person set into refs sorted by name then id
func refSet(set map[uuid.UUID]string) []catalog.PersonRef {
	refs := make([]catalog.PersonRef, 0, len(set))
	for id, name := range set {
		refs = append(refs, catalog.PersonRef{ID: id, Name: name})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].ID.String() < refs[j].ID.String()
	})
	return refs
}

// names projects a ref list to its names, same order and length
func names(refs []catalog.PersonRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
