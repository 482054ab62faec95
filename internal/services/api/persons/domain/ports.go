package domain

import (
	"context"

	"github.com/google/uuid"
)

// ServicePort defines the service contract for persons
type ServicePort interface {
	ByID(ctx context.Context, personID uuid.UUID) (*Person, error)
	Films(ctx context.Context, personID uuid.UUID) ([]PersonFilm, error)
	Search(ctx context.Context, q SearchQuery) ([]Person, error)
}
