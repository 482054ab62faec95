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

// PersonRowStream yields flat person combinations grouped by person id
type PersonRowStream interface {
	Next(ctx context.Context) (domain.PersonRow, error)
	Close()
}

// PersonFold reduces contiguous person rows to one person document per
// person, collecting the role set per film along the way
type PersonFold struct {
	src PersonRowStream
	acc *personAcc
	err error
}

// NewPersonFold builds a fold over src
func NewPersonFold(src PersonRowStream) *PersonFold {
	if src == nil {
		panic("transform.PersonFold requires a source stream")
	}
	return &PersonFold{src: src}
}

// Next returns the next completed person, io.EOF when drained
func (f *PersonFold) Next(ctx context.Context) (catalog.Person, error) {
	if f.err != nil {
		return catalog.Person{}, f.err
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
			return catalog.Person{}, io.EOF
		}
		if err != nil {
			f.err = err
			return catalog.Person{}, err
		}

		if f.acc == nil {
			f.acc = newPersonAcc(row)
			f.acc.absorb(ctx, row)
			continue
		}
		if f.acc.id != row.PersonID {
			out := f.acc.finish()
			f.acc = newPersonAcc(row)
			f.acc.absorb(ctx, row)
			return out, nil
		}
		f.acc.absorb(ctx, row)
	}
}

// Close releases the source stream
func (f *PersonFold) Close() { f.src.Close() }

type filmRoles struct {
	title string
	roles map[string]struct{}
}

type personAcc struct {
	id    uuid.UUID
	name  string
	films map[uuid.UUID]*filmRoles
}

func newPersonAcc(row domain.PersonRow) *personAcc {
	return &personAcc{
		id:    row.PersonID,
		name:  row.FullName,
		films: map[uuid.UUID]*filmRoles{},
	}
}

func (a *personAcc) absorb(ctx context.Context, row domain.PersonRow) {
	if row.FilmID == nil {
		// person without credited work
		return
	}
	if row.Role == nil || row.Title == nil {
		logger.C(ctx).Debug().
			Str("person_id", a.id.String()).
			Msg("etl: incomplete film combination skipped")
		return
	}
	switch *row.Role {
	case catalog.RoleActor, catalog.RoleWriter, catalog.RoleDirector:
	default:
		logger.C(ctx).Debug().
			Str("person_id", a.id.String()).
			Str("role", *row.Role).
			Msg("etl: unknown role skipped")
		return
	}

	fr := a.films[*row.FilmID]
	if fr == nil {
		fr = &filmRoles{title: *row.Title, roles: map[string]struct{}{}}
		a.films[*row.FilmID] = fr
	}
	fr.roles[*row.Role] = struct{}{}
}

func (a *personAcc) finish() catalog.Person {
	p := catalog.NewPerson(a.id, a.name)
	for id, fr := range a.films {
		p.Films = append(p.Films, catalog.PersonFilmRef{
			ID:    id,
			Title: fr.title,
			Roles: sortedSet(fr.roles),
		})
	}
	sort.Slice(p.Films, func(i, j int) bool {
		if p.Films[i].Title != p.Films[j].Title {
			return p.Films[i].Title < p.Films[j].Title
		}
		return p.Films[i].ID.String() < p.Films[j].ID.String()
	})
	return p
}
