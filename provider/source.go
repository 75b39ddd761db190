package provider

import (
	"context"
	"time"

	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/rate"
)

// Source is an interface for getting historical data from external sources.
// Source takes care of receiving data, pacing requests and giving back
// normalized rate facts
//
//go:generate mockgen -source source.go -destination mock_source.go -package provider
type Source interface {
	// Name identifies the provider in reports and logs
	Name() string

	// GetExchangeable declares to give a list of exchangeable currencies
	GetExchangeable() []label.Symbol

	// FetchHistory returns every rate the provider published inside the
	// inclusive [start, end] range. Dates the provider skipped are simply
	// absent. Partial results are returned together with an aggregate of the
	// per-pair failures; no failure is fatal
	FetchHistory(ctx context.Context, start, end time.Time) ([]rate.Rate, error)
}
