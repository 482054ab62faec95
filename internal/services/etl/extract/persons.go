package extract

import (
	"context"
	"fmt"

	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"

	"github.com/google/uuid"
)

// PersonEnricher projects the flat person x film x role combinations for
// batches of upstream person ids, ordered by person id. People with no
// credited work still yield one row with NULL film and role
type PersonEnricher struct {
	p pager[domain.PersonRow]
}

// NewPersonEnricher builds a person enricher fed by up
func NewPersonEnricher(q store.RowQuerier, up RowStream, schema string, batch int) *PersonEnricher {
	if q == nil {
		panic("extract.PersonEnricher requires a non nil RowQuerier")
	}
	if up == nil {
		panic("extract.PersonEnricher requires an upstream cursor")
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	sql := fmt.Sprintf(
		`SELECT p.id, p.full_name, pfw.role, fw.id, fw.title
FROM %[1]s.person p
LEFT JOIN %[1]s.person_film_work pfw ON pfw.person_id = p.id
LEFT JOIN %[1]s.film_work fw ON fw.id = pfw.film_work_id
WHERE p.id = ANY($1)
ORDER BY p.id`,
		schema,
	)

	return &PersonEnricher{p: pager[domain.PersonRow]{
		up:    up,
		batch: batch,
		query: func(ctx context.Context, ids []uuid.UUID) (store.Rows, error) {
			return q.Query(ctx, sql, ids)
		},
		scan: func(rows store.Rows) (domain.PersonRow, error) {
			var r domain.PersonRow
			err := rows.Scan(&r.PersonID, &r.FullName, &r.Role, &r.FilmID, &r.Title)
			if err != nil {
				return domain.PersonRow{}, err
			}
			return r, nil
		},
	}}
}

// Next returns the next flat combination, io.EOF when drained
func (e *PersonEnricher) Next(ctx context.Context) (domain.PersonRow, error) { return e.p.next(ctx) }

// Close releases the batch stream and the upstream cursor
func (e *PersonEnricher) Close() { e.p.close() }
