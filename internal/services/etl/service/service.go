// Package service orchestrates the sync pipeline. Producers feed the
// fan-out and enrichment stages; folds assemble documents and the loaders
// ship them into the search engine. One sweep runs every task once; Run
// loops sweeps forever with a pause in between
package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"cinedex/internal/core/catalog"
	perr "cinedex/internal/platform/errors"
	"cinedex/internal/platform/logger"
	"cinedex/internal/platform/retry"
	"cinedex/internal/platform/state"
	"cinedex/internal/platform/store"
	"cinedex/internal/services/etl/domain"
	"cinedex/internal/services/etl/extract"
	"cinedex/internal/services/etl/load"
	"cinedex/internal/services/etl/transform"
)

// Watermark keys, one per sync task
const (
	markPersons    = "persons_modified"
	markGenres     = "genres_modified"
	markFilms      = "films_modified"
	markGenreDocs  = "genre_docs_modified"
	markPersonDocs = "person_docs_modified"
)

// Config holds configuration options for the sync pipeline
type Config struct {
	Schema     string        // source schema
	PGBatch    int           // merger and enricher batch size
	ESBatch    int           // bulk chunk size
	MovieIndex string        // film index name
	IndexPath  string        // film mapping file; genre and person mappings are siblings
	Sleep      time.Duration // pause between sweeps
	Backoff    retry.Policy  // applied at the sweep boundary
}

// Service implements the sync pipeline
type Service struct {
	db    store.RowQuerier
	marks *state.Store
	cfg   Config

	movies  *load.Loader
	genres  *load.Loader
	persons *load.Loader
}

// New constructs the sync service
func New(db store.RowQuerier, es store.Search, marks *state.Store, cfg Config) *Service {
	if db == nil {
		panic("etl.Service requires a non nil RowQuerier")
	}
	if es == nil {
		panic("etl.Service requires a non nil Search")
	}
	if marks == nil {
		panic("etl.Service requires a non nil state store")
	}
	if cfg.Schema == "" {
		cfg.Schema = "content"
	}
	if cfg.MovieIndex == "" {
		cfg.MovieIndex = catalog.MoviesIndex
	}
	if cfg.Sleep <= 0 {
		cfg.Sleep = 10 * time.Second
	}
	return &Service{
		db:      db,
		marks:   marks,
		cfg:     cfg,
		movies:  load.New(es, cfg.MovieIndex, cfg.ESBatch),
		genres:  load.New(es, catalog.GenresIndex, cfg.ESBatch),
		persons: load.New(es, catalog.PersonsIndex, cfg.ESBatch),
	}
}

// movieTask pairs one watched table with its optional fan-out join
type movieTask struct {
	name     string
	table    string
	stateKey string
	join     *domain.JoinSpec
}

func movieTasks() []movieTask {
	filmJoin := func(mergeTable, mergeID string) *domain.JoinSpec {
		return &domain.JoinSpec{
			BaseTable:  "film_work",
			BaseID:     "id",
			MergeTable: mergeTable,
			MergeID:    mergeID,
			MergeFK:    "film_work_id",
		}
	}
	return []movieTask{
		{name: "persons", table: "person", stateKey: markPersons, join: filmJoin("person_film_work", "person_id")},
		{name: "genres", table: "genre", stateKey: markGenres, join: filmJoin("genre_film_work", "genre_id")},
		{name: "films", table: "film_work", stateKey: markFilms},
	}
}

// Run sweeps forever, pausing between sweeps, until ctx is cancelled.
// A failed sweep re-enters through the backoff policy and restarts from
// the current watermarks
func (s *Service) Run(ctx context.Context) error {
	logger.C(ctx).Info().
		Str("schema", s.cfg.Schema).
		Str("index", s.movies.Index()).
		Dur("sleep", s.cfg.Sleep).
		Msg("etl: starting")

	for {
		err := retry.Do(ctx, s.cfg.Backoff, "etl sweep", func(ctx context.Context) error {
			_, err := s.Sweep(ctx)
			return err
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if err := retry.Sleep(ctx, s.cfg.Sleep); err != nil {
			return err
		}
	}
}

// Sweep runs every sync task once and reports documents written per index
func (s *Service) Sweep(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	if err := s.ensureIndexes(ctx); err != nil {
		return st, err
	}

	for _, t := range movieTasks() {
		n, err := s.syncMovies(ctx, t)
		st.Movies += n
		if err != nil {
			return st, err
		}
	}

	n, err := s.syncGenreDocs(ctx)
	st.Genres += n
	if err != nil {
		return st, err
	}

	n, err = s.syncPersonDocs(ctx)
	st.Persons += n
	if err != nil {
		return st, err
	}

	if st.Total() > 0 {
		logger.C(ctx).Info().
			Int64("movies", st.Movies).
			Int64("genres", st.Genres).
			Int64("persons", st.Persons).
			Msg("etl: sweep done")
	}
	return st, nil
}

// syncMovies runs one producer, fans it out to films when the task has a
// join, enriches, folds and loads into the movies index
func (s *Service) syncMovies(ctx context.Context, t movieTask) (int64, error) {
	var src extract.RowStream = extract.NewProducer(s.db, s.marks, s.cfg.Schema, t.table, t.stateKey)
	if t.join != nil {
		src = extract.NewMerger(s.db, src, s.cfg.Schema, *t.join, s.cfg.PGBatch)
	}
	fold := transform.NewMovieFold(extract.NewFilmEnricher(s.db, src, s.cfg.Schema, s.cfg.PGBatch))
	defer fold.Close()

	st, err := load.Run(ctx, s.movies, fold.Next, func(m catalog.Movie) string { return m.ID.String() })
	if st.Indexed > 0 {
		logger.C(ctx).Info().
			Str("task", t.name).
			Int64("docs", st.Indexed).
			Msg("etl: movies indexed")
	}
	return st.Indexed, err
}

// syncGenreDocs keeps the genres index aligned with the genre table
func (s *Service) syncGenreDocs(ctx context.Context) (int64, error) {
	prod := extract.NewProducer(s.db, s.marks, s.cfg.Schema, "genre", markGenreDocs)
	rows := extract.NewGenreProjector(s.db, prod, s.cfg.Schema, s.cfg.PGBatch)
	defer rows.Close()

	st, err := load.Run(ctx, s.genres, rows.Next, func(g catalog.Genre) string { return g.ID.String() })
	if st.Indexed > 0 {
		logger.C(ctx).Info().Int64("docs", st.Indexed).Msg("etl: genres indexed")
	}
	return st.Indexed, err
}

// syncPersonDocs keeps the persons index aligned with the person table
// and its film credits
func (s *Service) syncPersonDocs(ctx context.Context) (int64, error) {
	prod := extract.NewProducer(s.db, s.marks, s.cfg.Schema, "person", markPersonDocs)
	fold := transform.NewPersonFold(extract.NewPersonEnricher(s.db, prod, s.cfg.Schema, s.cfg.PGBatch))
	defer fold.Close()

	st, err := load.Run(ctx, s.persons, fold.Next, func(p catalog.Person) string { return p.ID.String() })
	if st.Indexed > 0 {
		logger.C(ctx).Info().Int64("docs", st.Indexed).Msg("etl: persons indexed")
	}
	return st.Indexed, err
}

// ensureIndexes creates the three indexes from their mapping files when
// absent. The film mapping lives at IndexPath, the genre and person
// mappings are its siblings named after the fixed index names
func (s *Service) ensureIndexes(ctx context.Context) error {
	dir := filepath.Dir(s.cfg.IndexPath)
	for _, target := range []struct {
		loader *load.Loader
		path   string
	}{
		{s.movies, s.cfg.IndexPath},
		{s.genres, filepath.Join(dir, catalog.GenresIndex+".json")},
		{s.persons, filepath.Join(dir, catalog.PersonsIndex+".json")},
	} {
		mapping, err := os.ReadFile(target.path)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "etl: read mapping %s", target.path)
		}
		if err := target.loader.EnsureIndex(ctx, mapping); err != nil {
			return err
		}
	}
	return nil
}
