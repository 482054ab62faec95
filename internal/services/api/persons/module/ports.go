package module

import (
	"context"

	personsdom "cinedex/internal/services/api/persons/domain"
	personssvc "cinedex/internal/services/api/persons/service"

	"github.com/google/uuid"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptPersonsPort adapts the persons service to the domain port interface
type adaptPersonsPort struct{ svc personssvc.Service }

// ByID implements the domain ServicePort interface
func (a adaptPersonsPort) ByID(ctx context.Context, personID uuid.UUID) (*personsdom.Person, error) {
	return a.svc.ByID(ctx, personID)
}

// Films implements the domain ServicePort interface
func (a adaptPersonsPort) Films(ctx context.Context, personID uuid.UUID) ([]personsdom.PersonFilm, error) {
	return a.svc.Films(ctx, personID)
}

// Search implements the domain ServicePort interface
func (a adaptPersonsPort) Search(ctx context.Context, q personsdom.SearchQuery) ([]personsdom.Person, error) {
	return a.svc.Search(ctx, q)
}
