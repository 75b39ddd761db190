package frankfurter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/fxlino/internal/logging"
	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/provider"
	"github.com/robotomize/fxlino/provider/httputil"
	"github.com/robotomize/fxlino/rate"
	"github.com/sethvargo/go-retry"
)

const hostname = "api.frankfurter.app"

// Name identifies the provider in reports
const Name = "frankfurter"

// SourceName is the provenance label stamped on every produced rate
const SourceName = "frankfurter.dev (ECB)"

// defaultPacing is the cooperative pause after every request
const defaultPacing = 200 * time.Millisecond

var defaultBaseURL = url.URL{Scheme: "https", Host: hostname}

type Option func(*source)

// WithPairs replaces the default pair table
func WithPairs(pairs []Pair) Option {
	return func(s *source) {
		s.pairs = pairs
	}
}

// WithRetryPolicy set the fetch retry policy
func WithRetryPolicy(p provider.RetryPolicy) Option {
	return func(s *source) {
		s.policy = p
	}
}

// WithPacing set the pause inserted after each request; zero disables pacing
func WithPacing(d time.Duration) Option {
	return func(s *source) {
		s.pacing = d
	}
}

// WithBaseURL points the source at another endpoint
func WithBaseURL(u url.URL) Option {
	return func(s *source) {
		s.u = u
	}
}

var _ provider.Source = (*source)(nil)

func NewSource(client *http.Client, opts ...Option) *source {
	s := &source{
		u:      defaultBaseURL,
		pairs:  DefaultPairs,
		policy: provider.DefaultRetryPolicy(),
		pacing: defaultPacing,
		client: httputil.NewHTTPClient(client),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type source struct {
	u      url.URL
	pairs  []Pair
	policy provider.RetryPolicy
	pacing time.Duration
	client httputil.SourceHTTPClient
}

func (s *source) Name() string {
	return Name
}

func (s *source) GetExchangeable() []label.Symbol {
	uniq := make(map[label.Symbol]struct{})
	list := make([]label.Symbol, 0, len(s.pairs))

	for _, p := range s.pairs {
		for _, sym := range []label.Symbol{p.From, p.To} {
			if _, ok := uniq[sym]; !ok {
				uniq[sym] = struct{}{}
				list = append(list, sym)
			}
		}
	}

	return list
}

// FetchHistory walks the configured pair table in order, one request per
// pair. A pair whose fetch exhausts its retries contributes zero rates
func (s *source) FetchHistory(ctx context.Context, start, end time.Time) ([]rate.Rate, error) {
	logger := logging.FromContext(ctx)

	var list []rate.Rate
	var ferr *multierror.Error

	for _, p := range s.pairs {
		b, err := s.fetchPair(ctx, p, start, end)
		if err != nil {
			logger.Printf("%s -> %s: %v", p.From, p.To, err)
			ferr = multierror.Append(ferr, fmt.Errorf("%s/%s: %w", p.From, p.To, err))
			s.pace(ctx)
			continue
		}

		rates, err := decodeJSON(b, p)
		if err != nil {
			logger.Printf("%s -> %s: %v", p.From, p.To, err)
			ferr = multierror.Append(ferr, fmt.Errorf("%s/%s: %w", p.From, p.To, err))
			s.pace(ctx)
			continue
		}

		logger.Printf("%s -> %s: %d rates", p.From, p.To, len(rates))
		list = append(list, rates...)

		s.pace(ctx)
	}

	return list, ferr.ErrorOrNil()
}

func (s *source) fetchPair(ctx context.Context, p Pair, start, end time.Time) ([]byte, error) {
	u := s.u
	u.Path = fmt.Sprintf("/%s..%s", start.Format(rate.DateLayout), end.Format(rate.DateLayout))

	query := u.Query()
	query.Set("from", p.From.String())
	query.Set("to", p.To.String())
	u.RawQuery = query.Encode()

	var b []byte

	if err := s.policy.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.Get(ctx, u)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("fetching: %w", err))
		}

		b = resp

		return nil
	}); err != nil {
		return nil, err
	}

	return b, nil
}

// pace respects the provider rate limits between requests
func (s *source) pace(ctx context.Context) {
	if s.pacing <= 0 {
		return
	}

	t := time.NewTimer(s.pacing)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
