package extract

import (
	"context"
	"fmt"

	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"

	"github.com/google/uuid"
)

// FilmEnricher projects the flat film x person x role x genre combinations
// for batches of upstream film ids. Rows come out ordered by film id so
// one film's combinations are contiguous for the downstream fold
type FilmEnricher struct {
	p pager[domain.FilmRow]
}

// NewFilmEnricher builds a film enricher fed by up
func NewFilmEnricher(q store.RowQuerier, up RowStream, schema string, batch int) *FilmEnricher {
	if q == nil {
		panic("extract.FilmEnricher requires a non nil RowQuerier")
	}
	if up == nil {
		panic("extract.FilmEnricher requires an upstream cursor")
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	sql := fmt.Sprintf(
		`SELECT
	fw.id, fw.title, fw.description, fw.rating, fw.type, fw.created, fw.modified,
	pfw.role, p.id, p.full_name, g.name
FROM %[1]s.film_work fw
LEFT JOIN %[1]s.person_film_work pfw ON pfw.film_work_id = fw.id
LEFT JOIN %[1]s.person p ON p.id = pfw.person_id
LEFT JOIN %[1]s.genre_film_work gfw ON gfw.film_work_id = fw.id
LEFT JOIN %[1]s.genre g ON g.id = gfw.genre_id
WHERE fw.id = ANY($1)
ORDER BY fw.id`,
		schema,
	)

	return &FilmEnricher{p: pager[domain.FilmRow]{
		up:    up,
		batch: batch,
		query: func(ctx context.Context, ids []uuid.UUID) (store.Rows, error) {
			return q.Query(ctx, sql, ids)
		},
		scan: func(rows store.Rows) (domain.FilmRow, error) {
			var r domain.FilmRow
			err := rows.Scan(
				&r.FilmID, &r.Title, &r.Description, &r.Rating, &r.Type, &r.Created, &r.Modified,
				&r.Role, &r.PersonID, &r.PersonName, &r.Genre,
			)
			if err != nil {
				return domain.FilmRow{}, err
			}
			return r, nil
		},
	}}
}

// Next returns the next flat combination, io.EOF when drained
func (e *FilmEnricher) Next(ctx context.Context) (domain.FilmRow, error) { return e.p.next(ctx) }

// Close releases the batch stream and the upstream cursor
func (e *FilmEnricher) Close() { e.p.close() }
