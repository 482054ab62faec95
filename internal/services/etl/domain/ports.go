package domain

import "context"

// Stats counts documents written per index during one sweep
type Stats struct {
	Movies  int64
	Genres  int64
	Persons int64
}

// Total sums the per-index counts
func (s Stats) Total() int64 { return s.Movies + s.Genres + s.Persons }

// RunnerPort is the public surface of the sync pipeline
type RunnerPort interface {
	// Run sweeps forever until ctx is cancelled
	Run(ctx context.Context) error

	// Sweep runs every sync task once and reports documents written
	Sweep(ctx context.Context) (Stats, error)
}
