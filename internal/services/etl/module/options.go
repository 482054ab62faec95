package module

import (
	"time"

	"cinedex/internal/core/catalog"
	"cinedex/internal/platform/config"
	"cinedex/internal/platform/retry"
)

// Options holds configuration options for the sync pipeline
type Options struct {
	Schema     string
	PGBatch    int
	ESBatch    int
	MovieIndex string
	IndexPath  string
	StatePath  string
	Sleep      time.Duration
	Backoff    retry.Policy
}

// FromConfig reads the pipeline options from the environment
func FromConfig(cfg config.Conf) Options {
	pg := cfg.Prefix("POSTGRES_")
	es := cfg.Prefix("ELASTIC_")
	bo := cfg.Prefix("BACKOFF_")

	pol := retry.DefaultPolicy()
	pol.Start = bo.MaySeconds("START_TIME", pol.Start)
	pol.Factor = bo.MayFloat64("FACTOR", pol.Factor)
	pol.Border = bo.MaySeconds("BORDER_TIME", pol.Border)

	return Options{
		Schema:     pg.MayString("SCHEMA", "content"),
		PGBatch:    pg.MayInt("BATCH", 1000),
		ESBatch:    es.MayInt("BATCH", 1000),
		MovieIndex: es.MayString("INDEX", catalog.MoviesIndex),
		IndexPath:  cfg.MayString("INDEX_PATH", "schemas/es/movies.json"),
		StatePath:  cfg.MayString("STATE_PATH", "state.json"),
		Sleep:      cfg.MaySeconds("SLEEP_TIME", 10*time.Second),
		Backoff:    pol,
	}
}
