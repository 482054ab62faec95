package load

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/store"
)

type bulkCall struct {
	index string
	docs  []store.Doc
}

type fakeSearch struct {
	bulks   []bulkCall
	bulkFn  func(call int, docs []store.Doc) (store.BulkStats, error)
	ensured map[string][]byte
}

func (f *fakeSearch) EnsureIndex(_ context.Context, index string, mapping []byte) error {
	if f.ensured == nil {
		f.ensured = map[string][]byte{}
	}
	f.ensured[index] = mapping
	return nil
}

func (f *fakeSearch) Bulk(_ context.Context, index string, docs []store.Doc) (store.BulkStats, error) {
	// the loader reuses its staging slice, keep a copy
	cp := make([]store.Doc, len(docs))
	copy(cp, docs)
	f.bulks = append(f.bulks, bulkCall{index: index, docs: cp})
	if f.bulkFn != nil {
		return f.bulkFn(len(f.bulks), cp)
	}
	return store.BulkStats{Indexed: int64(len(docs))}, nil
}

func (f *fakeSearch) Get(context.Context, string, string) (json.RawMessage, error) {
	return nil, perr.ErrNotFound
}

func (f *fakeSearch) MGet(context.Context, string, []string, ...string) ([]json.RawMessage, error) {
	return nil, nil
}

func (f *fakeSearch) Search(context.Context, string, any) (store.SearchResult, error) {
	return store.SearchResult{}, nil
}

type testDoc struct {
	ID  string `json:"id"`
	Val int    `json:"val"`
}

func docSource(items []testDoc) func(context.Context) (testDoc, error) {
	i := 0
	return func(context.Context) (testDoc, error) {
		if i >= len(items) {
			return testDoc{}, io.EOF
		}
		v := items[i]
		i++
		return v, nil
	}
}

func docID(d testDoc) string { return d.ID }

func TestRun_ChunksByBatch(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{}
	l := New(es, "movies", 2)
	items := []testDoc{{"a", 1}, {"b", 2}, {"c", 3}, {"d", 4}, {"e", 5}}

	st, err := Run(context.Background(), l, docSource(items), docID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Indexed != 5 || st.Failed != 0 {
		t.Fatalf("stats %+v", st)
	}
	if len(es.bulks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(es.bulks))
	}
	for i, want := range []int{2, 2, 1} {
		if len(es.bulks[i].docs) != want {
			t.Fatalf("chunk %d has %d docs, want %d", i, len(es.bulks[i].docs), want)
		}
		if es.bulks[i].index != "movies" {
			t.Fatalf("chunk %d index %q", i, es.bulks[i].index)
		}
	}
	first := es.bulks[0].docs[0]
	if first.ID != "a" {
		t.Fatalf("doc id %q", first.ID)
	}
	var decoded testDoc
	if err := json.Unmarshal(first.Body, &decoded); err != nil || decoded.Val != 1 {
		t.Fatalf("doc body %s: %v", first.Body, err)
	}
}

func TestRun_ItemRejectionsDoNotStopTheStream(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{bulkFn: func(call int, docs []store.Doc) (store.BulkStats, error) {
		if call == 1 {
			return store.BulkStats{
				Indexed: int64(len(docs)) - 1,
				Failed:  1,
				Reason:  "mapper_parsing_exception",
			}, nil
		}
		return store.BulkStats{Indexed: int64(len(docs))}, nil
	}}
	l := New(es, "movies", 2)
	items := []testDoc{{"a", 1}, {"b", 2}, {"c", 3}}

	st, err := Run(context.Background(), l, docSource(items), docID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Indexed != 2 || st.Failed != 1 {
		t.Fatalf("stats %+v", st)
	}
	if st.Reason != "mapper_parsing_exception" {
		t.Fatalf("reason %q", st.Reason)
	}
	if len(es.bulks) != 2 {
		t.Fatalf("stream stopped early: %d chunks", len(es.bulks))
	}
}

func TestRun_BulkErrorStops(t *testing.T) {
	t.Parallel()

	boom := errors.New("engine down")
	es := &fakeSearch{bulkFn: func(call int, docs []store.Doc) (store.BulkStats, error) {
		if call == 2 {
			return store.BulkStats{}, boom
		}
		return store.BulkStats{Indexed: int64(len(docs))}, nil
	}}
	l := New(es, "movies", 1)
	items := []testDoc{{"a", 1}, {"b", 2}, {"c", 3}}

	st, err := Run(context.Background(), l, docSource(items), docID)
	if err != boom {
		t.Fatalf("expected bulk error, got %v", err)
	}
	if st.Indexed != 1 {
		t.Fatalf("stats before failure %+v", st)
	}
	if len(es.bulks) != 2 {
		t.Fatalf("kept writing after failure: %d chunks", len(es.bulks))
	}
}

func TestRun_SourceErrorStopsBeforeFlush(t *testing.T) {
	t.Parallel()

	boom := errors.New("stream broke")
	es := &fakeSearch{}
	l := New(es, "movies", 10)
	i := 0
	next := func(context.Context) (testDoc, error) {
		if i == 1 {
			return testDoc{}, boom
		}
		i++
		return testDoc{ID: "a"}, nil
	}

	_, err := Run(context.Background(), l, next, docID)
	if err != boom {
		t.Fatalf("expected source error, got %v", err)
	}
	if len(es.bulks) != 0 {
		t.Fatalf("partial chunk flushed after stream error")
	}
}

func TestRun_EmptyStream(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{}
	l := New(es, "movies", 2)

	st, err := Run(context.Background(), l, docSource(nil), docID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Indexed != 0 || len(es.bulks) != 0 {
		t.Fatalf("wrote without input: %+v %d", st, len(es.bulks))
	}
}

func TestRun_UnmarshalableDocSkipped(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{}
	l := New(es, "movies", 10)
	items := []any{map[string]any{"id": "ok"}, make(chan int)}
	i := 0
	next := func(context.Context) (any, error) {
		if i >= len(items) {
			return nil, io.EOF
		}
		v := items[i]
		i++
		return v, nil
	}

	st, err := Run(context.Background(), l, next, func(any) string { return "x" })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Indexed != 1 || len(es.bulks) != 1 || len(es.bulks[0].docs) != 1 {
		t.Fatalf("marshal failure not skipped: %+v", st)
	}
}

func TestEnsureIndex_PassesMappingThrough(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{}
	l := New(es, "genres", 2)
	mapping := []byte(`{"mappings":{}}`)

	if err := l.EnsureIndex(context.Background(), mapping); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	if string(es.ensured["genres"]) != string(mapping) {
		t.Fatalf("mapping not forwarded: %s", es.ensured["genres"])
	}
}

func TestNew_ZeroBatchGetsDefault(t *testing.T) {
	t.Parallel()

	es := &fakeSearch{}
	l := New(es, "movies", 0)
	items := make([]testDoc, 1001)
	for i := range items {
		items[i] = testDoc{ID: "x", Val: i}
	}

	if _, err := Run(context.Background(), l, docSource(items), docID); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(es.bulks) != 2 || len(es.bulks[0].docs) != 1000 || len(es.bulks[1].docs) != 1 {
		t.Fatalf("default chunking wrong: %d chunks", len(es.bulks))
	}
}
