// Package module wires genres into the API using modkit
package module

import (
	"net/http"

	modkit "cinedex/internal/modkit"
	"cinedex/internal/modkit/cachekit"
	"cinedex/internal/modkit/httpkit"
	str "cinedex/internal/platform/strings"
	genreshttp "cinedex/internal/services/api/genres/http"
	genresrepo "cinedex/internal/services/api/genres/repo"
	genressvc "cinedex/internal/services/api/genres/service"
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

	svc genressvc.Service
}

// New constructs a genres module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("genres"), modkit.WithPrefix("/genres")}, opts...)...)

	ttl := deps.Cfg.MaySeconds("CACHE_TTL", cachekit.DefaultTTL)
	repo := genresrepo.NewES(deps.ES)
	svc := genressvc.New(repo, cachekit.New(deps.RDS, ttl))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptGenresPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		genreshttp.Register(r, m.svc)
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
