package domain

import (
	"context"

	"github.com/google/uuid"
)

// ServicePort defines the service contract for genres
type ServicePort interface {
	All(ctx context.Context) ([]Genre, error)
	ByID(ctx context.Context, genreID uuid.UUID) (*Genre, error)
}
