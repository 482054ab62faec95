package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"cinedex/internal/modkit"
	"cinedex/internal/modkit/module"
	"cinedex/internal/modkit/repokit"
	"cinedex/internal/platform/config"
	"cinedex/internal/platform/logger"
	"cinedex/internal/platform/store"

	etlmod "cinedex/internal/services/etl/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("POSTGRES_")
	esCfg := root.Prefix("ELASTIC_")

	l := logger.Get()

	// stop between sweeps on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgURL := (&url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(pgCfg.MustString("USER"), pgCfg.MustString("PASSWORD")),
		Host:   fmt.Sprintf("%s:%d", pgCfg.MayString("HOST", "localhost"), pgCfg.MayInt("PORT", 5432)),
		Path:   "/" + pgCfg.MustString("DB"),
	}).String()

	st, err := store.Open(ctx, store.Config{
		AppName: "cinedex-etl",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		ES: store.ESConfig{
			Enabled: true,
			Addresses: []string{fmt.Sprintf("http://%s:%d",
				esCfg.MayString("HOST", "localhost"), esCfg.MayInt("PORT", 9200))},
			Username: esCfg.MayString("USERNAME", ""),
			Password: esCfg.MayString("PASSWORD", ""),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// both seams must answer before the first sweep
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		ES:  st.ES,
		Log: *l,
	}

	mod := etlmod.New(deps)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[etlmod.Ports](mod)
	if err := ports.Runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("etl stopped")
	}
}
