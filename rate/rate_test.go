package rate

import (
	"math"
	"testing"

	"github.com/robotomize/fxlino/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		rate Rate
		err  error
	}{
		{
			name: "test_valid",
			rate: Rate{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234},
		},
		{
			name: "test_same_pair",
			rate: Rate{From: label.USD, To: label.USD, Date: "2021-01-25", Value: 1.0},
			err:  ErrSamePair,
		},
		{
			name: "test_zero_value",
			rate: Rate{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0},
			err:  ErrNonPositive,
		},
		{
			name: "test_negative_value",
			rate: Rate{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: -1},
			err:  ErrNonPositive,
		},
		{
			name: "test_inf_value",
			rate: Rate{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: math.Inf(1)},
			err:  ErrNonPositive,
		},
		{
			name: "test_bad_date",
			rate: Rate{From: label.USD, To: label.EUR, Date: "25.01.2021", Value: 1},
			err:  ErrBadDate,
		},
		{
			name: "test_impossible_date",
			rate: Rate{From: label.USD, To: label.EUR, Date: "2021-02-30", Value: 1},
			err:  ErrBadDate,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.rate.Validate()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestSeriesMergeLastWriteWins(t *testing.T) {
	t.Parallel()

	s := NewSeries(label.USD, label.EUR)

	batch1 := []Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8200, Source: "a"},
	}
	batch2 := []Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.8234, Source: "b"},
		{From: label.USD, To: label.EUR, Date: "2021-02-01", Value: 0.8315, Source: "b"},
	}

	s.Merge(batch1)
	s.Merge(batch2)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 0.8234, s.Entries["2021-01-25"])
	assert.Equal(t, 0.8315, s.Entries["2021-02-01"])
	assert.Equal(t, "b", s.Source)
	assert.Equal(t, []string{"2021-01-25", "2021-02-01"}, s.Dates())
}

func TestSeriesMergeBatchOrderWins(t *testing.T) {
	t.Parallel()

	s := NewSeries(label.USD, label.EUR)
	s.Merge([]Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.81, Source: "x"},
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.82, Source: "x"},
	})

	assert.Equal(t, 0.82, s.Entries["2021-01-25"])
}

func TestSeriesMergeIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSeries(label.GBP, label.USD)
	s.Merge([]Rate{
		{From: label.GBP, To: label.USD, Date: "2021-01-25", Value: 1.3680, Source: "frankfurter.dev (ECB)"},
		{From: label.GBP, To: label.USD, Date: "2021-01-26", Value: 1.3733, Source: "frankfurter.dev (ECB)"},
	})

	before := &Series{From: s.From, To: s.To, Source: s.Source, Entries: map[string]float64{}}
	for d, v := range s.Entries {
		before.Entries[d] = v
	}

	s.Merge(s.Rates())

	assert.True(t, before.Equal(s))
}

func TestSeriesMergeEmptyBatchKeepsSource(t *testing.T) {
	t.Parallel()

	s := NewSeries(label.USD, label.EUR)
	s.Source = "frankfurter.dev (ECB)"
	s.Merge(nil)

	assert.Equal(t, "frankfurter.dev (ECB)", s.Source)
	assert.Equal(t, 0, s.Len())
}

func TestGroupByPair(t *testing.T) {
	t.Parallel()

	rates := []Rate{
		{From: label.USD, To: label.EUR, Date: "2021-01-25", Value: 0.82},
		{From: label.RUB, To: label.JPY, Date: "2021-01-25", Value: 1.38},
		{From: label.USD, To: label.EUR, Date: "2021-01-26", Value: 0.83},
	}

	groups := GroupByPair(rates)
	require.Len(t, groups, 2)
	assert.Len(t, groups[Pair{From: label.USD, To: label.EUR}], 2)
	assert.Len(t, groups[Pair{From: label.RUB, To: label.JPY}], 1)

	pairs := SortedPairs(groups)
	assert.Equal(t, []Pair{
		{From: label.RUB, To: label.JPY},
		{From: label.USD, To: label.EUR},
	}, pairs)
}
