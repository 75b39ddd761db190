package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robotomize/fxlino/internal/logging"
	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/lino"
	"github.com/robotomize/fxlino/rate"
)

// ConsolidateSummary reports what a consolidation pass did
type ConsolidateSummary struct {
	// Files is the number of per-day documents folded
	Files int
	// Skipped is the number of documents that failed to parse
	Skipped int
	// Pairs is the number of consolidated documents written
	Pairs int
	// Removed is the number of per-day documents deleted afterwards
	Removed int
}

// DayFile is one decoded per-day document together with its location in
// the walked tree
type DayFile struct {
	Path string
	Rate rate.Rate
}

// CollectDaily walks a per-day tree and decodes every nested .lino document.
// Rates are grouped by the pair each document declares, never by directory
// names. Malformed documents are logged, skipped and counted. Documents
// naming a currency outside the configured set still fold, with a warning
func CollectDaily(ctx context.Context, fsys fs.FS) ([]DayFile, int, error) {
	logger := logging.FromContext(ctx)

	var files []DayFile
	var skipped int

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, lino.Ext) {
			return nil
		}

		// consolidated documents live at the root of the tree
		if !strings.Contains(path, "/") {
			return nil
		}

		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			logger.Printf("warning: read %s: %v", path, err)
			skipped++
			return nil
		}

		r, err := lino.DecodeDay(b)
		if err != nil {
			logger.Printf("warning: parse %s: %v", path, err)
			skipped++
			return nil
		}

		for _, sym := range []label.Symbol{r.From, r.To} {
			if _, ok := label.ParseSymbol(sym.String()); !ok {
				logger.Printf("warning: %s: currency %s is not in the configured set", path, sym)
			}
		}

		files = append(files, DayFile{Path: path, Rate: r})

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if skipped > 0 {
		logger.Printf("warning: skipped %d unparseable files", skipped)
	}

	return files, skipped, nil
}

// Consolidate folds every per-day document under the data directory into the
// consolidated per-pair documents, merging with whatever is already stored.
// With remove set the folded documents are deleted and emptied directories
// pruned, mirroring the reorganization the legacy tooling performed. Only
// documents of pairs whose consolidated write succeeded are removed; a pair
// failing to merge keeps its per-day files in place
func (s *Store) Consolidate(ctx context.Context, remove bool) (ConsolidateSummary, error) {
	logger := logging.FromContext(ctx)

	var summary ConsolidateSummary

	if _, err := os.Stat(s.dir); err != nil {
		return summary, err
	}

	files, skipped, err := CollectDaily(ctx, os.DirFS(s.dir))
	if err != nil {
		return summary, err
	}

	summary.Files = len(files)
	summary.Skipped = skipped

	groups := make(map[rate.Pair][]rate.Rate, len(files))
	pairPaths := make(map[rate.Pair][]string, len(files))
	for _, f := range files {
		p := f.Rate.Pair()
		groups[p] = append(groups[p], f.Rate)
		pairPaths[p] = append(pairPaths[p], f.Path)
	}

	var folded []string

	for _, p := range rate.SortedPairs(groups) {
		series, err := s.MergeWrite(p, groups[p])
		if err != nil {
			logger.Printf("warning: consolidate %s: %v", p, err)
			continue
		}

		if series != nil {
			logger.Printf("%s: %d rates -> %s", p, series.Len(), lino.SeriesFileName(p))
			summary.Pairs++
			folded = append(folded, pairPaths[p]...)
		}
	}

	if remove {
		summary.Removed = s.removeDaily(ctx, folded)
	}

	return summary, nil
}

func (s *Store) removeDaily(ctx context.Context, paths []string) int {
	logger := logging.FromContext(ctx)

	var removed int
	dirs := make(map[string]struct{})

	for _, p := range paths {
		full := filepath.Join(s.dir, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil {
			logger.Printf("warning: remove %s: %v", full, err)
			continue
		}

		removed++
		dirs[filepath.Dir(full)] = struct{}{}
	}

	// prune emptied {from}/{to} directories, deepest first, then their parents
	pruned := make([]string, 0, len(dirs)*2)
	for d := range dirs {
		pruned = append(pruned, d)
		if parent := filepath.Dir(d); parent != filepath.Clean(s.dir) {
			pruned = append(pruned, parent)
		}
	}

	sort.Slice(pruned, func(i, j int) bool {
		return len(pruned[i]) > len(pruned[j])
	})

	for _, d := range pruned {
		// fails while a directory still has entries, which is fine
		_ = os.Remove(d)
	}

	return removed
}
