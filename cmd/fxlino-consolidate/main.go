package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/robotomize/fxlino/internal/logging"
	"github.com/robotomize/fxlino/store"
)

var (
	dirFlag    = flag.String("dir", "data/currency", "data directory holding per-day .lino files")
	removeFlag = flag.Bool("remove", false, "delete folded per-day files and prune emptied directories")
)

func main() {
	flag.Parse()

	ctx := logging.WithLogger(context.Background(), logging.NewLogger("fxlino: ", log.Lmsgprefix))
	logger := logging.FromContext(ctx)

	logger.Printf("currency directory: %s", *dirFlag)

	s := store.New(*dirFlag)

	summary, err := s.Consolidate(ctx, *removeFlag)
	if err != nil {
		logger.Printf("consolidate: %v", err)
		os.Exit(1)
	}

	logger.Printf("consolidation complete")
	logger.Printf("  per-day files folded: %d", summary.Files)
	logger.Printf("  currency pairs written: %d", summary.Pairs)
	if summary.Skipped > 0 {
		logger.Printf("  files skipped: %d", summary.Skipped)
	}
	if *removeFlag {
		logger.Printf("  per-day files removed: %d", summary.Removed)
	}
}
