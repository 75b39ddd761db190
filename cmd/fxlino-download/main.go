package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/robotomize/fxlino"
	"github.com/robotomize/fxlino/internal/logging"
	"github.com/robotomize/fxlino/rate"
	"github.com/robotomize/fxlino/store"
)

var (
	dirFlag     = flag.String("dir", "data/currency", "data directory for .lino files")
	startFlag   = flag.String("start", "", "range start, YYYY-MM-DD (default today minus five years)")
	endFlag     = flag.String("end", "", "range end, YYYY-MM-DD (default today)")
	dailyFlag   = flag.Bool("daily", false, "write one file per (pair, date) instead of consolidated files")
	timeoutFlag = flag.Duration("timeout", 30*time.Second, "per-request timeout")
)

func main() {
	flag.Parse()

	ctx := logging.WithLogger(context.Background(), logging.NewLogger("fxlino: ", log.Lmsgprefix))
	logger := logging.FromContext(ctx)

	start, end, err := parseRange(flag.Args())
	if err != nil {
		logger.Printf("%v", err)
		flag.Usage()
		os.Exit(2)
	}

	opts := make([]fxlino.Option, 0, 1)
	if *dailyFlag {
		opts = append(opts, fxlino.WithDailyLayout())
	}

	client := &http.Client{Timeout: *timeoutFlag}
	d := fxlino.New(client, store.New(*dirFlag), opts...)

	logger.Printf("output directory: %s", *dirFlag)
	logger.Printf("date range: %s to %s", start.Format(rate.DateLayout), end.Format(rate.DateLayout))

	summary := d.Download(ctx, start, end)

	for _, info := range summary.Sources {
		switch info.Status {
		case fxlino.SourceStatusOK:
			logger.Printf("%s: ok, %d rates", info.Name, info.Rates)
		case fxlino.SourceStatusPartial:
			logger.Printf("%s: partial, %d rates: %s", info.Name, info.Rates, info.ErrorMessage)
		case fxlino.SourceStatusFailed:
			logger.Printf("%s: failed: %s", info.Name, info.ErrorMessage)
		}
	}

	logger.Printf("total rates: %d, files written: %d", summary.RatesTotal, summary.FilesWritten)
}

// parseRange reads the window from -start/-end or from two positional
// arguments, falling back to the default five-year window
func parseRange(args []string) (time.Time, time.Time, error) {
	startStr, endStr := *startFlag, *endFlag

	if len(args) == 2 {
		startStr, endStr = args[0], args[1]
	}

	start, end := fxlino.DefaultRange()

	if startStr != "" {
		t, err := time.Parse(rate.DateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad start date %q: %w", startStr, err)
		}
		start = t
	}

	if endStr != "" {
		t, err := time.Parse(rate.DateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad end date %q: %w", endStr, err)
		}
		end = t
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf(
			"range end %s is before start %s", end.Format(rate.DateLayout), start.Format(rate.DateLayout),
		)
	}

	return start, end, nil
}
