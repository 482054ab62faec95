package module

import (
	"context"

	filmsdom "cinedex/internal/services/api/films/domain"
	filmssvc "cinedex/internal/services/api/films/service"

	"github.com/google/uuid"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptFilmsPort adapts the films service to the domain port interface
type adaptFilmsPort struct{ svc filmssvc.Service }

// ByID implements the domain ServicePort interface
func (a adaptFilmsPort) ByID(ctx context.Context, filmID uuid.UUID) (*filmsdom.Film, error) {
	return a.svc.ByID(ctx, filmID)
}

// BySort implements the domain ServicePort interface
func (a adaptFilmsPort) BySort(ctx context.Context, q filmsdom.SortQuery) ([]filmsdom.FilmSummary, error) {
	return a.svc.BySort(ctx, q)
}

// ByQuery implements the domain ServicePort interface
func (a adaptFilmsPort) ByQuery(ctx context.Context, q filmsdom.SearchQuery) ([]filmsdom.FilmSummary, error) {
	return a.svc.ByQuery(ctx, q)
}
