// Package http provides http transport for films
package http

import (
	stdhttp "net/http"

	"cinedex/internal/modkit/httpkit"
	"cinedex/internal/platform/net/http/bind"
	"cinedex/internal/services/api/films/domain"
	svc "cinedex/internal/services/api/films/service"
)

// Register mounts films endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.SearchQuery](r, "/search", h.search)
	httpkit.Get(r, "/{film_id}", h.byID)
	httpkit.GetQuery[domain.SortQuery](r, "/", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /films/search Films filmsSearch
// @Summary Fuzzy film title search
// @Tags Films
// @Produce json
// @Param film_title query string true "Title to search for"
// @Param page_size query int false "Records per page (1 to 100)"
// @Param page_number query int false "Page number (from 1)"
// @Success 200 {array} domain.FilmSummary "ok"
// @Router /films/search [get]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchQuery) (any, error) {
	return h.svc.ByQuery(r.Context(), in)
}

// swagger:route GET /films/{film_id} Films filmsByID
// @Summary Film details with credits and genres
// @Tags Films
// @Produce json
// @Param film_id path string true "Film id"
// @Success 200 {object} domain.Film "ok"
// @Router /films/{film_id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id, err := bind.UUIDParam(r, "film_id")
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), id)
}

// swagger:route GET /films Films filmsList
// @Summary Films ordered by rating, optionally narrowed to a genre
// @Tags Films
// @Produce json
// @Param sort query string false "imdb_rating or -imdb_rating"
// @Param page_size query int false "Records per page (1 to 100)"
// @Param page_number query int false "Page number (from 1)"
// @Param genre_id query string false "Genre id"
// @Success 200 {array} domain.FilmSummary "ok"
// @Router /films [get]
func (h *handlers) list(r *stdhttp.Request, in domain.SortQuery) (any, error) {
	return h.svc.BySort(r.Context(), in)
}
