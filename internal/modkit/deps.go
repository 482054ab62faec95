// Package modkit provides module wiring and core deps
package modkit

import (
	"cinedex/internal/modkit/repokit"
	"cinedex/internal/platform/config"
	"cinedex/internal/platform/logger"
	"cinedex/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	ES  store.Search
	RDS store.Cache
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
