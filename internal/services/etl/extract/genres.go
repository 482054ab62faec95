package extract

import (
	"context"
	"fmt"

	"cinedex/internal/core/catalog"
	"cinedex/internal/platform/store"

	"github.com/google/uuid"
)

// GenreProjector reads {id, name} for batches of upstream genre ids.
// Genres join nothing, the projection is one row per id
type GenreProjector struct {
	p pager[catalog.Genre]
}

// NewGenreProjector builds a genre projector fed by up
func NewGenreProjector(q store.RowQuerier, up RowStream, schema string, batch int) *GenreProjector {
	if q == nil {
		panic("extract.GenreProjector requires a non nil RowQuerier")
	}
	if up == nil {
		panic("extract.GenreProjector requires an upstream cursor")
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	sql := fmt.Sprintf(
		`SELECT g.id, g.name
FROM %s.genre g
WHERE g.id = ANY($1)
ORDER BY g.id`,
		schema,
	)

	return &GenreProjector{p: pager[catalog.Genre]{
		up:    up,
		batch: batch,
		query: func(ctx context.Context, ids []uuid.UUID) (store.Rows, error) {
			return q.Query(ctx, sql, ids)
		},
		scan: func(rows store.Rows) (catalog.Genre, error) {
			var g catalog.Genre
			if err := rows.Scan(&g.ID, &g.Name); err != nil {
				return catalog.Genre{}, err
			}
			return g, nil
		},
	}}
}

// Next returns the next genre document, io.EOF when drained
func (g *GenreProjector) Next(ctx context.Context) (catalog.Genre, error) { return g.p.next(ctx) }

// Close releases the batch stream and the upstream cursor
func (g *GenreProjector) Close() { g.p.close() }
