package extract

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"cinedex/internal/platform/state"
	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"

	"github.com/google/uuid"
)

// uid builds a uuid whose last byte is n, so ids sort predictably
func uid(n byte) uuid.UUID {
	var u uuid.UUID
	u[15] = n
	return u
}

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }
func uidPtr(u uuid.UUID) *uuid.UUID { return &u }

func openState(t *testing.T) *state.Store {
	t.Helper()
	st, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	return st
}

// sliceRows serves canned rows through the store.Rows seam.
// Row values must be assignable to the scan destinations; nil means NULL
type sliceRows struct {
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newSliceRows(data [][]any) *sliceRows { return &sliceRows{data: data, idx: -1} }

func (r *sliceRows) Columns() []string { return nil }

func (r *sliceRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx >= 0 && r.idx < len(r.data)
}

func (r *sliceRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("dest len mismatch")
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || !dv.Elem().CanSet() {
			return errors.New("dest not settable")
		}
		if row[i] == nil {
			dv.Elem().Set(reflect.Zero(dv.Elem().Type()))
			continue
		}
		val := reflect.ValueOf(row[i])
		if !val.Type().AssignableTo(dv.Elem().Type()) {
			return errors.New("value not assignable to dest")
		}
		dv.Elem().Set(val)
	}
	return nil
}

func (r *sliceRows) Err() error { return r.err }
func (r *sliceRows) Close()     { r.closed = true }

// queryCall records one Query invocation
type queryCall struct {
	sql  string
	args []any
}

// scriptQuerier pops one canned result set per Query call, in order
type scriptQuerier struct {
	t     *testing.T
	pages []*sliceRows
	errAt int // 1-based call number that fails, 0 for never
	calls []queryCall
}

func (q *scriptQuerier) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("unexpected Exec")
}

func (q *scriptQuerier) QueryRow(context.Context, string, ...any) store.Row {
	q.t.Fatal("unexpected QueryRow")
	return nil
}

func (q *scriptQuerier) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.calls = append(q.calls, queryCall{sql: sql, args: args})
	if q.errAt == len(q.calls) {
		return nil, errors.New("query failed")
	}
	if len(q.pages) == 0 {
		q.t.Fatalf("unexpected query %d: %s", len(q.calls), sql)
	}
	rows := q.pages[0]
	q.pages = q.pages[1:]
	return rows, nil
}

// idStream feeds fixed row versions as an upstream cursor
type idStream struct {
	rows   []domain.RowVersion
	idx    int
	closed bool
}

func (s *idStream) Next(context.Context) (domain.RowVersion, error) {
	if s.idx >= len(s.rows) {
		return domain.RowVersion{}, io.EOF
	}
	rv := s.rows[s.idx]
	s.idx++
	return rv, nil
}

func (s *idStream) Close() { s.closed = true }

// errStream fails every pull
type errStream struct{ err error }

func (s *errStream) Next(context.Context) (domain.RowVersion, error) {
	return domain.RowVersion{}, s.err
}

func (s *errStream) Close() {}
