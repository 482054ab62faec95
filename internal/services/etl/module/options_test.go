package module

import (
	"testing"
	"time"

	"cinedex/internal/platform/config"
)

func TestFromConfig_Defaults(t *testing.T) {
	opts := FromConfig(config.New())

	if opts.Schema != "content" {
		t.Fatalf("Schema = %q", opts.Schema)
	}
	if opts.PGBatch != 1000 || opts.ESBatch != 1000 {
		t.Fatalf("batches = %d/%d", opts.PGBatch, opts.ESBatch)
	}
	if opts.MovieIndex != "movies" {
		t.Fatalf("MovieIndex = %q", opts.MovieIndex)
	}
	if opts.IndexPath != "schemas/es/movies.json" {
		t.Fatalf("IndexPath = %q", opts.IndexPath)
	}
	if opts.StatePath != "state.json" {
		t.Fatalf("StatePath = %q", opts.StatePath)
	}
	if opts.Sleep != 10*time.Second {
		t.Fatalf("Sleep = %v", opts.Sleep)
	}
	if opts.Backoff.Start != 100*time.Millisecond || opts.Backoff.Factor != 2 || opts.Backoff.Border != 10*time.Second {
		t.Fatalf("Backoff = %+v", opts.Backoff)
	}
}

func TestFromConfig_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_SCHEMA", "media")
	t.Setenv("POSTGRES_BATCH", "250")
	t.Setenv("ELASTIC_BATCH", "50")
	t.Setenv("ELASTIC_INDEX", "films")
	t.Setenv("INDEX_PATH", "/etc/cinedex/movies.json")
	t.Setenv("STATE_PATH", "/var/lib/cinedex/state.json")
	t.Setenv("SLEEP_TIME", "30")
	t.Setenv("BACKOFF_START_TIME", "0.5")
	t.Setenv("BACKOFF_FACTOR", "3")
	t.Setenv("BACKOFF_BORDER_TIME", "60")

	opts := FromConfig(config.New())

	if opts.Schema != "media" || opts.PGBatch != 250 || opts.ESBatch != 50 {
		t.Fatalf("postgres opts %+v", opts)
	}
	if opts.MovieIndex != "films" || opts.IndexPath != "/etc/cinedex/movies.json" {
		t.Fatalf("elastic opts %+v", opts)
	}
	if opts.StatePath != "/var/lib/cinedex/state.json" {
		t.Fatalf("StatePath = %q", opts.StatePath)
	}
	if opts.Sleep != 30*time.Second {
		t.Fatalf("Sleep = %v", opts.Sleep)
	}
	if opts.Backoff.Start != 500*time.Millisecond {
		t.Fatalf("Backoff.Start = %v", opts.Backoff.Start)
	}
	if opts.Backoff.Factor != 3 {
		t.Fatalf("Backoff.Factor = %v", opts.Backoff.Factor)
	}
	if opts.Backoff.Border != time.Minute {
		t.Fatalf("Backoff.Border = %v", opts.Backoff.Border)
	}
}
