// Package extract implements the pull cursors that read changed rows out
// of the source database: a producer watches one table's modified column,
// the merger fans side-table changes out to the films they touch, and the
// enrichers project full rows for downstream folding.
//
// Every cursor follows the same contract: Next returns io.EOF when the
// stream is drained, any other error is sticky, Close is idempotent.
package extract

import (
	"context"
	"fmt"
	"io"

	"cinedex/internal/platform/state"
	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"
)

// RowStream is a pull cursor of row versions
type RowStream interface {
	Next(ctx context.Context) (domain.RowVersion, error)
	Close()
}

// Producer streams {id, modified} for rows whose modified timestamp passed
// the watermark, oldest first. The watermark advances before each row is
// yielded, so a restart resumes behind whatever made it downstream
type Producer struct {
	q        store.RowQuerier
	marks    *state.Store
	schema   string
	table    string
	stateKey string

	rows store.Rows
	err  error
}

// NewProducer builds a producer over schema.table tracked by stateKey
func NewProducer(q store.RowQuerier, marks *state.Store, schema, table, stateKey string) *Producer {
	if q == nil {
		panic("extract.Producer requires a non nil RowQuerier")
	}
	if marks == nil {
		panic("extract.Producer requires a non nil state store")
	}
	return &Producer{q: q, marks: marks, schema: schema, table: table, stateKey: stateKey}
}

// Next returns the next changed row, opening the stream on first use
func (p *Producer) Next(ctx context.Context) (domain.RowVersion, error) {
	if p.err != nil {
		return domain.RowVersion{}, p.err
	}
	if p.rows == nil {
		if err := p.open(ctx); err != nil {
			p.err = err
			return domain.RowVersion{}, err
		}
	}

	if !p.rows.Next() {
		if err := p.rows.Err(); err != nil {
			p.err = err
			return domain.RowVersion{}, err
		}
		p.err = io.EOF
		return domain.RowVersion{}, io.EOF
	}

	var rv domain.RowVersion
	if err := p.rows.Scan(&rv.ID, &rv.Modified); err != nil {
		p.err = err
		return domain.RowVersion{}, err
	}
	if err := p.marks.SetWatermark(p.stateKey, rv.Modified); err != nil {
		p.err = err
		return domain.RowVersion{}, err
	}
	return rv, nil
}

func (p *Producer) open(ctx context.Context) error {
	since, err := p.marks.EnsureWatermark(p.stateKey)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(
		`SELECT id, modified FROM %s.%s WHERE modified > $1 ORDER BY modified`,
		p.schema, p.table,
	)
	rows, err := p.q.Query(ctx, sql, since)
	if err != nil {
		return err
	}
	p.rows = rows
	return nil
}

// Close releases the underlying row stream
func (p *Producer) Close() {
	if p.rows != nil {
		p.rows.Close()
		p.rows = nil
	}
}
