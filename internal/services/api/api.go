// Package api provides the HTTP API for the application
package api

import (
	"cinedex/internal/platform/config"
	"cinedex/internal/platform/logger"
	phttp "cinedex/internal/platform/net/http"
	"cinedex/internal/platform/store"

	"cinedex/internal/modkit"
	"cinedex/internal/modkit/httpkit"
	"cinedex/internal/modkit/module"
	"cinedex/internal/modkit/swaggerkit"

	filmsmod "cinedex/internal/services/api/films/module"
	genresmod "cinedex/internal/services/api/genres/module"
	metamod "cinedex/internal/services/api/meta/module"
	personsmod "cinedex/internal/services/api/persons/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		ES:  opt.Store.ES,
		RDS: opt.Store.RDS,
	}

	mods := []module.Module{
		metamod.New(deps),
		filmsmod.New(deps),
		genresmod.New(deps),
		personsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
