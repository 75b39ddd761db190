package lino

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robotomize/fxlino/internal/strutil"
	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/rate"
)

// DecodeSeries parses a consolidated document. Every trimmed line is
// classified by its first whitespace-delimited token; unrecognized lines and
// unparseable data lines are ignored
func DecodeSeries(b []byte) (*rate.Series, error) {
	s := &rate.Series{Entries: make(map[string]float64)}

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		key, rest := splitKeyword(line)
		switch key {
		case keyFrom:
			s.From = label.Normalize(rest)
		case keyTo:
			s.To = label.Normalize(rest)
		case keySource:
			s.Source = strutil.Unquote(strutil.RemoveExtraSpaces(rest))
		default:
			date, value, ok := parseDataLine(line)
			if !ok {
				continue
			}

			s.Entries[date] = value
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if s.From == "" || s.To == "" {
		return nil, fmt.Errorf("%w: missing currency pair", ErrMalformed)
	}

	return s, nil
}

// DecodeDay parses a legacy per-day document into a single rate fact
func DecodeDay(b []byte) (rate.Rate, error) {
	var r rate.Rate
	var hasValue bool

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		key, rest := splitKeyword(line)
		switch key {
		case keyFrom:
			r.From = label.Normalize(rest)
		case keyTo:
			r.To = label.Normalize(rest)
		case keyDate:
			r.Date = rest
		case keyValue:
			v, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				continue
			}

			r.Value = v
			hasValue = true
		case keySource:
			r.Source = strutil.Unquote(strutil.RemoveExtraSpaces(rest))
		}
	}

	if err := sc.Err(); err != nil {
		return rate.Rate{}, fmt.Errorf("scan: %w", err)
	}

	if r.From == "" || r.To == "" || r.Date == "" || !hasValue {
		return rate.Rate{}, fmt.Errorf("%w: missing rate fields", ErrMalformed)
	}

	if err := r.Validate(); err != nil {
		return rate.Rate{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return r, nil
}

// splitKeyword cuts the leading token off a trimmed line
func splitKeyword(line string) (key, rest string) {
	idx := strings.IndexFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	if idx < 0 {
		return line, ""
	}

	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// parseDataLine matches the strict "<date> <value>" shape of data block lines
func parseDataLine(line string) (date string, value float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, false
	}

	if _, err := time.Parse(rate.DateLayout, fields[0]); err != nil {
		return "", 0, false
	}

	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, false
	}

	return fields[0], v, true
}
