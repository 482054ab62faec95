// Package http provides http transport for genres
package http

import (
	stdhttp "net/http"

	"cinedex/internal/modkit/httpkit"
	"cinedex/internal/platform/net/http/bind"
	svc "cinedex/internal/services/api/genres/service"
)

// Register mounts genres endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.all)
	httpkit.Get(r, "/{genre_id}", h.byID)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /genres Genres genresAll
// @Summary Full genre catalog
// @Tags Genres
// @Produce json
// @Success 200 {array} domain.Genre "ok"
// @Router /genres [get]
func (h *handlers) all(r *stdhttp.Request) (any, error) {
	return h.svc.All(r.Context())
}

// swagger:route GET /genres/{genre_id} Genres genresByID
// @Summary Genre details
// @Tags Genres
// @Produce json
// @Param genre_id path string true "Genre id"
// @Success 200 {object} domain.Genre "ok"
// @Router /genres/{genre_id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id, err := bind.UUIDParam(r, "genre_id")
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), id)
}
