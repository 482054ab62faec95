// @title         Cinedex API
// @version       0.1.0
// @description   Read only endpoints for films, genres and persons

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinedex/internal/modkit/repokit"
	"cinedex/internal/platform/config"
	"cinedex/internal/platform/logger"
	phttp "cinedex/internal/platform/net/http"
	"cinedex/internal/platform/store"

	"cinedex/internal/services/api"
)

func main() {
	root := config.New()

	// endpoints live under ELASTIC_* and REDIS_*, surface toggles under API_*
	esCfg := root.Prefix("ELASTIC_")
	rdsCfg := root.Prefix("REDIS_")
	apiCfg := root.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	// stop on SIGINT/SIGTERM so in-flight requests can drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store (search engine + cache)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "cinedex-api",
			ES: store.ESConfig{
				Enabled: true,
				Addresses: []string{fmt.Sprintf("http://%s:%d",
					esCfg.MayString("HOST", "localhost"), esCfg.MayInt("PORT", 9200))},
				Username: esCfg.MayString("USERNAME", ""),
				Password: esCfg.MayString("PASSWORD", ""),
			},
			RDS: store.RedisConfig{
				Enabled: true,
				Addr: fmt.Sprintf("%s:%d",
					rdsCfg.MayString("HOST", "localhost"), rdsCfg.MayInt("PORT", 6379)),
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// every seam must answer before we serve
	repokit.MustGuard(ctx, st)

	// http server (reads SERVICE_URL)
	srv := phttp.NewServer(root)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until a signal lands, then drain
	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("shutdown incomplete")
		}
		<-errc
	}
}
