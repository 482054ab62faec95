// Package module provides the sync pipeline module implementation
package module

import (
	"fmt"

	"cinedex/internal/modkit"
	"cinedex/internal/modkit/httpkit"
	"cinedex/internal/platform/state"
	"cinedex/internal/services/etl/domain"
	"cinedex/internal/services/etl/service"
)

// Ports defines the etl module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the etl module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the etl module.
// It opens the watermark state file and wires the pipeline using config
// from deps.Cfg. It does not mount any routes
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	marks, err := state.Open(opts.StatePath)
	if err != nil {
		panic(fmt.Sprintf("etl: open state %s: %v", opts.StatePath, err))
	}

	svc := service.New(
		deps.PG,
		deps.ES,
		marks,
		service.Config{
			Schema:     opts.Schema,
			PGBatch:    opts.PGBatch,
			ESBatch:    opts.ESBatch,
			MovieIndex: opts.MovieIndex,
			IndexPath:  opts.IndexPath,
			Sleep:      opts.Sleep,
			Backoff:    opts.Backoff,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "etl" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op as etl has no routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
