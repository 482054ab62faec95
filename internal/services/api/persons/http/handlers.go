// Package http provides http transport for persons
package http

import (
	stdhttp "net/http"

	"cinedex/internal/modkit/httpkit"
	"cinedex/internal/platform/net/http/bind"
	"cinedex/internal/services/api/persons/domain"
	svc "cinedex/internal/services/api/persons/service"
)

// Register mounts persons endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.SearchQuery](r, "/search", h.search)
	httpkit.Get(r, "/{person_id}", h.byID)
	httpkit.Get(r, "/{person_id}/film", h.films)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /persons/search Persons personsSearch
// @Summary Fuzzy person name search
// @Tags Persons
// @Produce json
// @Param person_name query string true "Name to search for"
// @Param page_size query int false "Records per page (1 to 100)"
// @Param page_number query int false "Page number (from 1)"
// @Success 200 {array} domain.Person "ok"
// @Router /persons/search [get]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchQuery) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route GET /persons/{person_id} Persons personsByID
// @Summary Person details with per-film roles
// @Tags Persons
// @Produce json
// @Param person_id path string true "Person id"
// @Success 200 {object} domain.Person "ok"
// @Router /persons/{person_id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id, err := bind.UUIDParam(r, "person_id")
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), id)
}

// swagger:route GET /persons/{person_id}/film Persons personsFilms
// @Summary Filmography for one person
// @Tags Persons
// @Produce json
// @Param person_id path string true "Person id"
// @Success 200 {array} domain.PersonFilm "ok"
// @Router /persons/{person_id}/film [get]
func (h *handlers) films(r *stdhttp.Request) (any, error) {
	id, err := bind.UUIDParam(r, "person_id")
	if err != nil {
		return nil, err
	}
	return h.svc.Films(r.Context(), id)
}
