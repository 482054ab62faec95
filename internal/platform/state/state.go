// Package state persists ETL sync progress as a small JSON document on disk.
//
// Values are flat string key/value pairs. Writes go through a temp file plus
// rename so a crash mid-save never leaves a torn file behind. A missing or
// corrupt file is treated as a cold start, not an error: the pipeline must be
// able to rebuild everything from source at any time
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	perr "cinedex/internal/platform/errors"
)

// WatermarkLayout is the wire format for persisted watermarks.
// Microsecond precision with a numeric zone, always rendered in UTC
const WatermarkLayout = "2006-01-02 15:04:05.000000 -0700"

// Store is a file-backed key/value store. Safe for concurrent use
type Store struct {
	path string

	mu   sync.Mutex
	vals map[string]string
}

// Open loads the store at path, starting empty when the file does not exist
// or does not parse. Other I/O failures (permissions, etc) are returned
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "state: empty path")
	}

	s := &Store{path: path, vals: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "state: read %s", path)
	}

	if err := json.Unmarshal(data, &s.vals); err != nil {
		// Corrupt state forces a full re-sync, which is always safe here
		s.vals = map[string]string{}
	}
	if s.vals == nil {
		s.vals = map[string]string{}
	}
	return s, nil
}

// Get returns the raw value for key
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[key]
	return v, ok
}

// Set stores key=value and persists the whole document immediately
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
	return s.save()
}

// Watermark returns the parsed watermark under key.
// Missing or unparseable values collapse to the zero time (year 1, UTC),
// which predates every real row and therefore selects everything
func (s *Store) Watermark(key string) time.Time {
	raw, ok := s.Get(key)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(WatermarkLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// SetWatermark persists t (normalized to UTC) under key
func (s *Store) SetWatermark(key string, t time.Time) error {
	return s.Set(key, t.UTC().Format(WatermarkLayout))
}

// EnsureWatermark seeds key with the zero-time sentinel when absent and
// returns the effective watermark. Called once per task before a sweep so
// a fresh deployment starts from the beginning of history
func (s *Store) EnsureWatermark(key string) (time.Time, error) {
	if _, ok := s.Get(key); !ok {
		if err := s.SetWatermark(key, time.Time{}); err != nil {
			return time.Time{}, err
		}
	}
	return s.Watermark(key), nil
}

// save writes the current map atomically. Callers hold s.mu
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.vals, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "state: marshal")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json.tmp")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "state: create temp in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "state: write temp")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "state: close temp")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "state: rename into place")
	}
	return nil
}
