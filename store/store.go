// Package store lays exchange-rate history out on the filesystem: one
// consolidated {from}-{to}.lino document per currency pair at the root of
// the data directory, and the legacy {from}/{to}/{date}.lino layout of
// one rate per file underneath it.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robotomize/fxlino/lino"
	"github.com/robotomize/fxlino/rate"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store reads and writes .lino rate documents inside a data directory
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// SeriesPath returns the consolidated document path for a pair
func (s *Store) SeriesPath(p rate.Pair) string {
	return filepath.Join(s.dir, lino.SeriesFileName(p))
}

// DailyPath returns the legacy per-day document path for one rate
func (s *Store) DailyPath(r rate.Rate) string {
	return filepath.Join(
		s.dir,
		strings.ToLower(r.From.String()),
		strings.ToLower(r.To.String()),
		lino.DayFileName(r.Date),
	)
}

// LoadSeries reads the consolidated document for a pair. A missing document
// is not an error and returns nil
func (s *Store) LoadSeries(p rate.Pair) (*rate.Series, error) {
	path := s.SeriesPath(p)

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	series, err := lino.DecodeSeries(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return series, nil
}

// WriteSeries persists a consolidated document. An empty series produces no
// file
func (s *Store) WriteSeries(series *rate.Series) error {
	if series == nil || series.Len() == 0 {
		return nil
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	var buf bytes.Buffer
	if err := lino.EncodeSeries(&buf, series); err != nil {
		return fmt.Errorf("encode series: %w", err)
	}

	path := s.SeriesPath(series.Pair())
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// MergeWrite folds a batch into the stored series of a pair as one logical
// read-merge-write step and reports the written series. A merge yielding no
// entries writes nothing and returns nil
func (s *Store) MergeWrite(p rate.Pair, batch []rate.Rate) (*rate.Series, error) {
	series, err := s.LoadSeries(p)
	if err != nil {
		return nil, err
	}

	if series == nil {
		series = rate.NewSeries(p.From, p.To)
	}

	series.Merge(batch)
	if series.Len() == 0 {
		return nil, nil
	}

	if err := s.WriteSeries(series); err != nil {
		return nil, err
	}

	return series, nil
}

// WriteDaily persists one rate in the legacy per-day layout
func (s *Store) WriteDaily(r rate.Rate) error {
	path := s.DailyPath(r)

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	var buf bytes.Buffer
	if err := lino.EncodeDay(&buf, r); err != nil {
		return fmt.Errorf("encode rate: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
