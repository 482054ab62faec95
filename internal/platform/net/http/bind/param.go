package bind

import (
	"net/http"

	perr "cinedex/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UUIDParam parses a chi URL parameter as a UUID
// malformed values map to InvalidArgument so the edge answers 422
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, perr.InvalidArgf("%s must be a valid uuid", name)
	}
	return id, nil
}
