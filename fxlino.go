// Package fxlino downloads historical currency exchange rates from public
// providers and persists them as .lino documents, one consolidated file per
// currency pair.
package fxlino

import (
	"context"
	"net/http"
	"time"

	"github.com/robotomize/fxlino/internal/logging"
	"github.com/robotomize/fxlino/provider"
	"github.com/robotomize/fxlino/provider/cbr"
	"github.com/robotomize/fxlino/provider/frankfurter"
	"github.com/robotomize/fxlino/rate"
	"github.com/robotomize/fxlino/store"
)

// DefaultHistoryYears is how far back a download reaches when the caller
// does not pick a range
const DefaultHistoryYears = 5

// DefaultRange returns the [today minus five years, today] download window
func DefaultRange() (start, end time.Time) {
	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(0, 0, -DefaultHistoryYears*365)

	return start, end
}

type SourceStatus byte

const (
	SourceStatusFailed SourceStatus = iota
	SourceStatusOK
	SourceStatusPartial
)

// SourceInfo reports how one provider behaved during a run
type SourceInfo struct {
	Name         string
	Status       SourceStatus
	ErrorMessage string
	Rates        int
}

// Summary is the outcome of one download run. Nothing in a run is fatal;
// callers wanting stricter behavior can inspect the per-source reports
type Summary struct {
	Sources      []SourceInfo
	RatesTotal   int
	PairsWritten int
	FilesWritten int
}

type Option func(*Downloader)

// WithSources replaces the default provider set
func WithSources(sources ...provider.Source) Option {
	return func(d *Downloader) {
		d.sources = sources
	}
}

// WithDailyLayout writes the legacy one-file-per-day layout instead of
// merging into consolidated documents
func WithDailyLayout() Option {
	return func(d *Downloader) {
		d.daily = true
	}
}

// New returns a Downloader over the default providers: the frankfurter.dev
// ECB feed and the Central Bank of Russia dynamic feed
func New(client *http.Client, st *store.Store, opts ...Option) *Downloader {
	d := &Downloader{
		store: st,
		sources: []provider.Source{
			frankfurter.NewSource(client),
			cbr.NewSource(client),
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type Downloader struct {
	store   *store.Store
	sources []provider.Source
	daily   bool
}

// Download fetches the inclusive [start, end] range from every source in
// order and persists the result one pair at a time. A source failing
// entirely degrades to zero rates for its pairs and the run continues
func (d *Downloader) Download(ctx context.Context, start, end time.Time) Summary {
	logger := logging.FromContext(ctx)

	var summary Summary
	var all []rate.Rate

	for _, src := range d.sources {
		info := SourceInfo{Name: src.Name(), Status: SourceStatusOK}

		logger.Printf("%s: downloading %s to %s", src.Name(), start.Format(rate.DateLayout), end.Format(rate.DateLayout))

		rates, err := src.FetchHistory(ctx, start, end)
		if err != nil {
			info.ErrorMessage = err.Error()
			info.Status = SourceStatusFailed
			if len(rates) > 0 {
				info.Status = SourceStatusPartial
			}
		}

		info.Rates = len(rates)
		all = append(all, rates...)

		summary.Sources = append(summary.Sources, info)
	}

	summary.RatesTotal = len(all)

	groups := rate.GroupByPair(all)
	for _, p := range rate.SortedPairs(groups) {
		if d.daily {
			for _, r := range groups[p] {
				if err := d.store.WriteDaily(r); err != nil {
					logger.Printf("warning: %s: %v", p, err)
					continue
				}

				summary.FilesWritten++
			}

			continue
		}

		series, err := d.store.MergeWrite(p, groups[p])
		if err != nil {
			logger.Printf("warning: %s: %v", p, err)
			continue
		}

		if series != nil {
			summary.PairsWritten++
			summary.FilesWritten++
		}
	}

	return summary
}
