package lino

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robotomize/fxlino/rate"
)

// SeriesFileName returns the canonical file name of a consolidated document,
// {from}-{to}.lino with lowercase currency codes
func SeriesFileName(p rate.Pair) string {
	return strings.ToLower(p.From.String()) + "-" + strings.ToLower(p.To.String()) + Ext
}

// DayFileName returns the file name of a legacy per-day document
func DayFileName(date string) string {
	return date + Ext
}

// EncodeSeries writes the consolidated document: pair identity, source and
// the data block with one "<date> <value>" line per entry, date ascending
func EncodeSeries(w io.Writer, s *rate.Series) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "rates:\n")
	fmt.Fprintf(bw, "  from %s\n", s.From)
	fmt.Fprintf(bw, "  to %s\n", s.To)
	fmt.Fprintf(bw, "  source '%s'\n", s.Source)
	fmt.Fprintf(bw, "  data:\n")

	for _, date := range s.Dates() {
		fmt.Fprintf(bw, "    %s %s\n", date, formatValue(s.Entries[date]))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// EncodeDay writes the legacy one-rate-per-file document
func EncodeDay(w io.Writer, r rate.Rate) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "rate:\n")
	fmt.Fprintf(bw, "  from %s\n", r.From)
	fmt.Fprintf(bw, "  to %s\n", r.To)
	fmt.Fprintf(bw, "  value %s\n", formatValue(r.Value))
	fmt.Fprintf(bw, "  date %s\n", r.Date)
	fmt.Fprintf(bw, "  source '%s'\n", r.Source)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
