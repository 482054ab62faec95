package module

import (
	"context"

	genresdom "cinedex/internal/services/api/genres/domain"
	genressvc "cinedex/internal/services/api/genres/service"

	"github.com/google/uuid"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptGenresPort adapts the genres service to the domain port interface
type adaptGenresPort struct{ svc genressvc.Service }

// All implements the domain ServicePort interface
func (a adaptGenresPort) All(ctx context.Context) ([]genresdom.Genre, error) {
	return a.svc.All(ctx)
}

// ByID implements the domain ServicePort interface
func (a adaptGenresPort) ByID(ctx context.Context, genreID uuid.UUID) (*genresdom.Genre, error) {
	return a.svc.ByID(ctx, genreID)
}
