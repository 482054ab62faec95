package domain

import (
	"context"

	"github.com/google/uuid"
)

// ServicePort defines the service contract for films
type ServicePort interface {
	ByID(ctx context.Context, filmID uuid.UUID) (*Film, error)
	BySort(ctx context.Context, q SortQuery) ([]FilmSummary, error)
	ByQuery(ctx context.Context, q SearchQuery) ([]FilmSummary, error)
}
