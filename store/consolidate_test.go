package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robotomize/fxlino/label"
	"github.com/robotomize/fxlino/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayDocument(from, to, value, date, source string) []byte {
	return []byte("rate:\n  from " + from + "\n  to " + to + "\n  value " + value +
		"\n  date " + date + "\n  source '" + source + "'\n")
}

func TestCollectDaily(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		// declared pair wins over the directory the file sits in
		"usd/eur/2021-01-25.lino": &fstest.MapFile{
			Data: dayDocument("gbp", "usd", "1.3680", "2021-01-25", "frankfurter.dev (ECB)"),
		},
		"usd/eur/2021-01-26.lino": &fstest.MapFile{
			Data: dayDocument("USD", "EUR", "0.8234", "2021-01-26", "frankfurter.dev (ECB)"),
		},
		"usd/eur/broken.lino": &fstest.MapFile{
			Data: []byte("rate:\n  from USD\n"),
		},
		"usd/eur/notes.txt": &fstest.MapFile{
			Data: []byte("not a rate"),
		},
		// a consolidated document at the root must not be folded
		"usd-eur.lino": &fstest.MapFile{
			Data: []byte("rates:\n  from USD\n  to EUR\n  source 'x'\n  data:\n    2021-01-01 0.9\n"),
		},
	}

	files, skipped, err := CollectDaily(context.Background(), fsys)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, 1, skipped)

	rates := make([]rate.Rate, 0, len(files))
	for _, f := range files {
		rates = append(rates, f.Rate)
	}

	groups := rate.GroupByPair(rates)
	assert.Len(t, groups[rate.Pair{From: label.GBP, To: label.USD}], 1)
	assert.Len(t, groups[rate.Pair{From: label.USD, To: label.EUR}], 1)
}

func TestCollectDaily_SkipsInvalidRates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"usd/eur/2021-01-25.lino": &fstest.MapFile{
			Data: dayDocument("USD", "EUR", "0.8234", "2021-01-25", "frankfurter.dev (ECB)"),
		},
		// date not in the canonical layout
		"usd/eur/2021-01-26.lino": &fstest.MapFile{
			Data: dayDocument("USD", "EUR", "0.82", "26.01.2021", "frankfurter.dev (ECB)"),
		},
		// non-positive value
		"usd/eur/2021-01-27.lino": &fstest.MapFile{
			Data: dayDocument("USD", "EUR", "0", "2021-01-27", "frankfurter.dev (ECB)"),
		},
		// identical currencies
		"usd/usd/2021-01-28.lino": &fstest.MapFile{
			Data: dayDocument("USD", "USD", "1", "2021-01-28", "frankfurter.dev (ECB)"),
		},
	}

	files, skipped, err := CollectDaily(context.Background(), fsys)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "usd/eur/2021-01-25.lino", files[0].Path)
	assert.Equal(t, 3, skipped)
}

func TestStore_Consolidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	rates := []rate.Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234, Source: "frankfurter.dev (ECB)"},
		{From: label.USD, To: label.EUR, Date: "2021-02-01", Value: 0.8315, Source: "frankfurter.dev (ECB)"},
		{From: label.JPY, To: label.RUB, Date: "2021-01-25", Value: 0.056, Source: "cbr.ru (Central Bank of Russia)"},
	}

	for _, r := range rates {
		require.NoError(t, s.WriteDaily(r))
	}

	summary, err := s.Consolidate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 2, summary.Pairs)
	assert.Equal(t, 0, summary.Removed)

	series, err := s.LoadSeries(rate.Pair{From: label.USD, To: label.EUR})
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Equal(t, []string{"2021-01-25", "2021-02-01"}, series.Dates())
	assert.Equal(t, "frankfurter.dev (ECB)", series.Source)

	// per-day files stay in place without remove
	_, statErr := os.Stat(filepath.Join(dir, "usd", "eur", "2021-01-25.lino"))
	assert.NoError(t, statErr)
}

func TestStore_ConsolidateMergesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	existing := rate.NewSeries(label.USD, label.EUR)
	existing.Merge([]rate.Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8200, Source: "frankfurter.dev (ECB)"},
		{From: label.USD, To: label.EUR, Date: "2020-12-01", Value: 0.8100, Source: "frankfurter.dev (ECB)"},
	})
	require.NoError(t, s.WriteSeries(existing))

	require.NoError(t, s.WriteDaily(rate.Rate{
		From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234, Source: "frankfurter.dev (ECB)",
	}))

	_, err := s.Consolidate(context.Background(), false)
	require.NoError(t, err)

	series, err := s.LoadSeries(rate.Pair{From: label.USD, To: label.EUR})
	require.NoError(t, err)
	require.NotNil(t, series)

	assert.Equal(t, 2, series.Len())
	assert.Equal(t, 0.8234, series.Entries["2021-01-25"])
	assert.Equal(t, 0.8100, series.Entries["2020-12-01"])
}

func TestStore_ConsolidateRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.WriteDaily(rate.Rate{
		From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234, Source: "frankfurter.dev (ECB)",
	}))

	summary, err := s.Consolidate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Removed)

	_, statErr := os.Stat(filepath.Join(dir, "usd"))
	assert.True(t, os.IsNotExist(statErr))

	_, statErr = os.Stat(filepath.Join(dir, "usd-eur.lino"))
	assert.NoError(t, statErr)
}

func TestStore_ConsolidateRemoveKeepsUnmergedDays(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.WriteDaily(rate.Rate{
		From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234, Source: "frankfurter.dev (ECB)",
	}))
	require.NoError(t, s.WriteDaily(rate.Rate{
		From: label.JPY, To: label.RUB, Date: "2021-01-25", Value: 0.056, Source: "cbr.ru (Central Bank of Russia)",
	}))

	// an unreadable consolidated document makes the usd-eur merge fail
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "usd-eur.lino"), []byte("rates:\n  data:\n    2021-01-01 0.9\n"), 0o644,
	))

	summary, err := s.Consolidate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Pairs)
	assert.Equal(t, 1, summary.Removed)

	// the failed pair keeps its per-day file
	_, statErr := os.Stat(filepath.Join(dir, "usd", "eur", "2021-01-25.lino"))
	assert.NoError(t, statErr)

	// the merged pair had its per-day tree pruned
	_, statErr = os.Stat(filepath.Join(dir, "jpy"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_ConsolidateFoldsUnknownCurrency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.WriteDaily(rate.Rate{
		From: "XAU", To: label.USD, Date: "2021-01-25", Value: 1855.7, Source: "frankfurter.dev (ECB)",
	}))

	summary, err := s.Consolidate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, 1, summary.Pairs)

	series, err := s.LoadSeries(rate.Pair{From: "XAU", To: label.USD})
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Equal(t, 1855.7, series.Entries["2021-01-25"])
}

func TestStore_ConsolidateMissingDir(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := s.Consolidate(context.Background(), false)
	assert.Error(t, err)
}
