// Package module wires persons into the API using modkit
package module

import (
	"net/http"

	"cinedex/internal/core/catalog"
	modkit "cinedex/internal/modkit"
	"cinedex/internal/modkit/cachekit"
	"cinedex/internal/modkit/httpkit"
	str "cinedex/internal/platform/strings"
	personshttp "cinedex/internal/services/api/persons/http"
	personsrepo "cinedex/internal/services/api/persons/repo"
	personssvc "cinedex/internal/services/api/persons/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc personssvc.Service
}

// New constructs a persons module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("persons"), modkit.WithPrefix("/persons")}, opts...)...)

	index := deps.Cfg.Prefix("ELASTIC_").MayString("INDEX", catalog.MoviesIndex)
	ttl := deps.Cfg.MaySeconds("CACHE_TTL", cachekit.DefaultTTL)
	repo := personsrepo.NewES(deps.ES, index)
	svc := personssvc.New(repo, cachekit.New(deps.RDS, ttl))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptPersonsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		personshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
