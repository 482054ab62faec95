package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "cinedex/internal/platform/errors"
	phttp "cinedex/internal/platform/net/http"
	"cinedex/internal/services/api/persons/domain"
	personshttp "cinedex/internal/services/api/persons/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubSvc struct {
	person *domain.Person
	films  []domain.PersonFilm
	found  []domain.Person
	err    error

	gotID     uuid.UUID
	gotFilms  uuid.UUID
	gotSearch *domain.SearchQuery
}

func (s *stubSvc) ByID(_ context.Context, id uuid.UUID) (*domain.Person, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.person, nil
}

func (s *stubSvc) Films(_ context.Context, id uuid.UUID) ([]domain.PersonFilm, error) {
	s.gotFilms = id
	if s.err != nil {
		return nil, s.err
	}
	return s.films, nil
}

func (s *stubSvc) Search(_ context.Context, q domain.SearchQuery) ([]domain.Person, error) {
	s.gotSearch = &q
	if s.err != nil {
		return nil, s.err
	}
	return s.found, nil
}

func newServer(s *stubSvc) http.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/persons", func(rr phttp.Router) { personshttp.Register(rr, s) })
	return mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Detail
}

func TestByID_RendersRoleSets(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s := &stubSvc{person: &domain.Person{
		UUID:     id,
		FullName: "Andrei Tarkovsky",
		Films:    []domain.FilmRoles{{UUID: uuid.New(), Roles: []string{"director", "writer"}}},
	}}
	rec := get(t, newServer(s), "/persons/"+id.String())

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out["uuid"] != id.String() || out["full_name"] != "Andrei Tarkovsky" {
		t.Fatalf("unexpected payload %v", out)
	}
	films, ok := out["films"].([]any)
	if !ok || len(films) != 1 {
		t.Fatalf("films list missing: %v", out)
	}
}

func TestByID_MalformedID(t *testing.T) {
	t.Parallel()

	rec := get(t, newServer(&stubSvc{}), "/persons/not-a-uuid")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if got := detail(t, rec); got != "person_id must be a valid uuid" {
		t.Fatalf("detail %q", got)
	}
}

func TestFilms_RoutesTheSubPath(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s := &stubSvc{films: []domain.PersonFilm{{UUID: uuid.New(), Title: "Solaris"}}}
	rec := get(t, newServer(s), "/persons/"+id.String()+"/film")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if s.gotFilms != id {
		t.Fatalf("path id drifted: %s", s.gotFilms)
	}
	if s.gotID != uuid.Nil {
		t.Fatal("the film sub path leaked into the person route")
	}
}

func TestFilms_AbsentDetail(t *testing.T) {
	t.Parallel()

	s := &stubSvc{err: perr.NotFoundf("persons film not found")}
	rec := get(t, newServer(s), "/persons/"+uuid.NewString()+"/film")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if got := detail(t, rec); got != "persons film not found" {
		t.Fatalf("detail %q", got)
	}
}

func TestSearch_RequiresName(t *testing.T) {
	t.Parallel()

	s := &stubSvc{}
	rec := get(t, newServer(s), "/persons/search")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if s.gotSearch != nil {
		t.Fatal("service ran without a name")
	}
}

func TestSearch_BindsPaging(t *testing.T) {
	t.Parallel()

	s := &stubSvc{found: []domain.Person{{UUID: uuid.New(), FullName: "X", Films: []domain.FilmRoles{}}}}
	rec := get(t, newServer(s), "/persons/search?person_name=tarkovsky&page_size=25&page_number=4")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	q := *s.gotSearch
	if q.Name != "tarkovsky" || q.PageSize != 25 || q.PageNumber != 4 {
		t.Fatalf("binding drifted: %+v", q)
	}
}
