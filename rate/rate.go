package rate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/robotomize/fxlino/label"
)

// DateLayout is the canonical calendar date form used everywhere in storage
const DateLayout = "2006-01-02"

var (
	ErrSamePair    = errors.New("from and to currencies are equal")
	ErrNonPositive = errors.New("rate is not positive")
	ErrBadDate     = errors.New("date is not a valid calendar date")
)

// Rate is one (from, to, date, value, source) fact
type Rate struct {
	From   label.Symbol
	To     label.Symbol
	Date   string
	Value  float64
	Source string
}

// Validate checks the invariants every emitted rate must hold
func (r Rate) Validate() error {
	if r.From == r.To {
		return fmt.Errorf("%w: %s", ErrSamePair, r.From)
	}

	if r.Value <= 0 || math.IsInf(r.Value, 0) || math.IsNaN(r.Value) {
		return fmt.Errorf("%w: %v", ErrNonPositive, r.Value)
	}

	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: %s", ErrBadDate, r.Date)
	}

	return nil
}

func (r Rate) Pair() Pair {
	return Pair{From: r.From, To: r.To}
}

// Pair is the ordered currency pair identity
type Pair struct {
	From label.Symbol
	To   label.Symbol
}

func (p Pair) String() string {
	return p.From.String() + "/" + p.To.String()
}

// GroupByPair buckets rates by their ordered pair, keeping the slice order
// inside every bucket
func GroupByPair(rates []Rate) map[Pair][]Rate {
	groups := make(map[Pair][]Rate)
	for _, r := range rates {
		p := r.Pair()
		groups[p] = append(groups[p], r)
	}

	return groups
}

// SortedPairs returns the group keys in a stable processing order
func SortedPairs(groups map[Pair][]Rate) []Pair {
	pairs := make([]Pair, 0, len(groups))
	for p := range groups {
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].String() < pairs[j].String()
	})

	return pairs
}

// Series is the consolidated, date-deduplicated history for one ordered pair.
// Entries keeps at most one value per date; ordering is a derived view, see Dates
type Series struct {
	From    label.Symbol
	To      label.Symbol
	Source  string
	Entries map[string]float64
}

func NewSeries(from, to label.Symbol) *Series {
	return &Series{
		From:    from,
		To:      to,
		Entries: make(map[string]float64),
	}
}

// Merge folds a batch into the series with last-write-wins semantics per
// date. Within one batch the later element in slice order wins. A non-empty
// batch also takes over the series source label
func (s *Series) Merge(batch []Rate) {
	if s.Entries == nil {
		s.Entries = make(map[string]float64, len(batch))
	}

	for _, r := range batch {
		s.Entries[r.Date] = r.Value
		s.Source = r.Source
	}
}

func (s *Series) Len() int {
	return len(s.Entries)
}

// Dates returns every entry date ascending. Lexicographic order of the
// canonical form is chronological order
func (s *Series) Dates() []string {
	dates := make([]string, 0, len(s.Entries))
	for date := range s.Entries {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	return dates
}

// Rates flattens the series back into date-ordered rate facts
func (s *Series) Rates() []Rate {
	list := make([]Rate, 0, len(s.Entries))
	for _, date := range s.Dates() {
		list = append(list, Rate{
			From:   s.From,
			To:     s.To,
			Date:   date,
			Value:  s.Entries[date],
			Source: s.Source,
		})
	}

	return list
}

func (s *Series) Pair() Pair {
	return Pair{From: s.From, To: s.To}
}

func (s *Series) Equal(other *Series) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.From != other.From || s.To != other.To || s.Source != other.Source {
		return false
	}

	if len(s.Entries) != len(other.Entries) {
		return false
	}

	for date, value := range s.Entries {
		v, ok := other.Entries[date]
		if !ok || v != value {
			return false
		}
	}

	return true
}
