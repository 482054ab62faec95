package extract

import (
	"context"
	"io"

	"cinedex/internal/platform/store"

	"github.com/google/uuid"
)

const defaultBatch = 1000

// takeIDs pulls up to n ids from the upstream cursor.
// The second return reports that the upstream is drained
func takeIDs(ctx context.Context, up RowStream, n int) ([]uuid.UUID, bool, error) {
	ids := make([]uuid.UUID, 0, n)
	for len(ids) < n {
		rv, err := up.Next(ctx)
		if err == io.EOF {
			return ids, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		ids = append(ids, rv.ID)
	}
	return ids, false, nil
}

// pager drains upstream ids in batches, one streamed query per batch.
// Rows inside a batch arrive ordered by the group key, so a key's rows
// stay contiguous for the downstream fold and never split across queries.
// Owns the upstream cursor
type pager[T any] struct {
	up    RowStream
	batch int
	query func(ctx context.Context, ids []uuid.UUID) (store.Rows, error)
	scan  func(rows store.Rows) (T, error)

	rows store.Rows
	done bool
	err  error
}

func (p *pager[T]) next(ctx context.Context) (T, error) {
	var zero T
	if p.err != nil {
		return zero, p.err
	}
	for {
		if p.rows != nil {
			if p.rows.Next() {
				v, err := p.scan(p.rows)
				if err != nil {
					return zero, p.fail(err)
				}
				return v, nil
			}
			err := p.rows.Err()
			p.rows.Close()
			p.rows = nil
			if err != nil {
				return zero, p.fail(err)
			}
			continue
		}

		if p.done {
			p.err = io.EOF
			return zero, io.EOF
		}
		ids, done, err := takeIDs(ctx, p.up, p.batch)
		if err != nil {
			return zero, p.fail(err)
		}
		p.done = done
		if len(ids) == 0 {
			p.err = io.EOF
			return zero, io.EOF
		}
		rows, err := p.query(ctx, ids)
		if err != nil {
			return zero, p.fail(err)
		}
		p.rows = rows
	}
}

func (p *pager[T]) fail(err error) error {
	p.err = err
	return err
}

func (p *pager[T]) close() {
	if p.rows != nil {
		p.rows.Close()
		p.rows = nil
	}
	if p.up != nil {
		p.up.Close()
	}
}
