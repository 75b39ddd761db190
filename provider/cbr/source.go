package cbr

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

const hostname = "www.cbr.ru"

// Name identifies the provider in reports
const Name = "cbr"

// SourceName is the provenance label stamped on every produced rate
const SourceName = "cbr.ru (Central Bank of Russia)"

// reqDateLayout is the form the dynamic endpoint expects range bounds in
const reqDateLayout = "02/01/2006"

// defaultPacing is the cooperative pause after every request
const defaultPacing = 300 * time.Millisecond

var defaultBaseURL = url.URL{Scheme: "https", Host: hostname, Path: "/scripts/XML_dynamic.asp"}

type Option func(*source)

// WithCodes replaces the default currency code table
func WithCodes(codes []CodeMapping) Option {
	return func(s *source) {
		s.codes = codes
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
		codes:  DefaultCodes,
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
	codes  []CodeMapping
	policy provider.RetryPolicy
	pacing time.Duration
	client httputil.SourceHTTPClient
}

func (s *source) Name() string {
	return Name
}

func (s *source) GetExchangeable() []label.Symbol {
	list := make([]label.Symbol, 0, len(s.codes)+1)
	list = append(list, label.RUB)

	for _, c := range s.codes {
		list = append(list, c.Symbol)
	}

	return list
}

// FetchHistory walks the configured code table in order, one request per
// foreign currency, and emits both directions of every RUB cross-rate
func (s *source) FetchHistory(ctx context.Context, start, end time.Time) ([]rate.Rate, error) {
	logger := logging.FromContext(ctx)

	var list []rate.Rate
	var ferr *multierror.Error

	for _, c := range s.codes {
		if _, ok := label.Currencies[c.Symbol]; !ok {
			continue
		}

		b, err := s.fetchCode(ctx, c.ID, start, end)
		if err != nil {
			logger.Printf("RUB <-> %s: %v", c.Symbol, err)
			ferr = multierror.Append(ferr, fmt.Errorf("%s: %w", c.Symbol, err))
			s.pace(ctx)
			continue
		}

		records, err := decodeXML(b)
		if err != nil {
			logger.Printf("RUB <-> %s: %v", c.Symbol, err)
			ferr = multierror.Append(ferr, fmt.Errorf("%s: %w", c.Symbol, err))
			s.pace(ctx)
			continue
		}

		rates := expand(c.Symbol, records)
		logger.Printf("RUB <-> %s: %d rates", c.Symbol, len(rates))
		list = append(list, rates...)

		s.pace(ctx)
	}

	return list, ferr.ErrorOrNil()
}

// expand turns every quotation into the two directed rates. The feed quotes
// value domestic units per nominal foreign units, so domestic to foreign is
// nominal/value and the inverse is value/nominal
func expand(sym label.Symbol, records []dynRecord) []rate.Rate {
	list := make([]rate.Rate, 0, len(records)*2)

	for _, rec := range records {
		date := rec.date.Format(rate.DateLayout)
		nominal := float64(rec.nominal)

		directed := []rate.Rate{
			{From: label.RUB, To: sym, Date: date, Value: nominal / rec.value, Source: SourceName},
			{From: sym, To: label.RUB, Date: date, Value: rec.value / nominal, Source: SourceName},
		}

		for _, r := range directed {
			if err := r.Validate(); err != nil {
				continue
			}

			list = append(list, r)
		}
	}

	return list
}

func (s *source) fetchCode(ctx context.Context, id Code, start, end time.Time) ([]byte, error) {
	u := s.u

	query := u.Query()
	query.Set("date_req1", start.Format(reqDateLayout))
	query.Set("date_req2", end.Format(reqDateLayout))
	query.Set("VAL_NM_RQ", string(id))
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
