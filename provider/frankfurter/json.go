package frankfurter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/rate"
)

// document is the range response shape: a mapping from date to a mapping
// from currency code to rate
type document struct {
	Base  label.Symbol                        `json:"base"`
	Rates map[string]map[label.Symbol]float64 `json:"rates"`
}

// decodeJSON extracts the configured target currency from every published
// date. Dates without the target are silently absent, entries violating the
// rate invariants are dropped
func decodeJSON(b []byte, p Pair) ([]rate.Rate, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errDecodeDocument, err)
	}

	list := make([]rate.Rate, 0, len(doc.Rates))
	for date, published := range doc.Rates {
		v, ok := published[p.To]
		if !ok {
			continue
		}

		r := rate.Rate{
			From:   p.From,
			To:     p.To,
			Date:   date,
			Value:  v,
			Source: SourceName,
		}

		if err := r.Validate(); err != nil {
			continue
		}

		list = append(list, r)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})

	return list, nil
}
