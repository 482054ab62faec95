package extract

import (
	"context"
	"fmt"

	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"

	"github.com/google/uuid"
)

// Merger fans changed side-table rows out to the films they touch.
// Upstream ids are taken in batches of batch; each batch runs one join
// query yielding distinct impacted films, ordered by base id within the
// batch only
type Merger struct {
	p pager[domain.RowVersion]
}

// NewMerger builds a merger over the join described by spec
func NewMerger(q store.RowQuerier, up RowStream, schema string, spec domain.JoinSpec, batch int) *Merger {
	if q == nil {
		panic("extract.Merger requires a non nil RowQuerier")
	}
	if up == nil {
		panic("extract.Merger requires an upstream cursor")
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	sql := fmt.Sprintf(
		`SELECT DISTINCT bt.id, bt.modified
FROM %s.%s bt
LEFT JOIN %s.%s mt ON mt.%s = bt.%s
WHERE mt.%s = ANY($1)
ORDER BY bt.%s`,
		schema, spec.BaseTable,
		schema, spec.MergeTable, spec.MergeFK, spec.BaseID,
		spec.MergeID,
		spec.BaseID,
	)

	return &Merger{p: pager[domain.RowVersion]{
		up:    up,
		batch: batch,
		query: func(ctx context.Context, ids []uuid.UUID) (store.Rows, error) {
			return q.Query(ctx, sql, ids)
		},
		scan: func(rows store.Rows) (domain.RowVersion, error) {
			var rv domain.RowVersion
			if err := rows.Scan(&rv.ID, &rv.Modified); err != nil {
				return domain.RowVersion{}, err
			}
			return rv, nil
		},
	}}
}

// Next returns the next impacted film, io.EOF when drained
func (m *Merger) Next(ctx context.Context) (domain.RowVersion, error) { return m.p.next(ctx) }

// Close releases the batch stream and the upstream cursor
func (m *Merger) Close() { m.p.close() }
