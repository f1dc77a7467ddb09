package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.9))
	assert.Zero(t, stats.WinRate(0))
	assert.Zero(t, stats.ContractRate(1))
	assert.Error(t, stats.Validate())
}

func TestGameResult(t *testing.T) {
	r := GameResult{Scores: [Seats]int{120, 150}, Declarer: 1, Bid: 150}
	assert.Equal(t, -30, r.Margin())
	assert.Equal(t, 1, r.Winner())
	assert.True(t, r.Made())

	r.Bid = 160
	assert.False(t, r.Made())

	r.Scores = [Seats]int{90, 90}
	assert.Equal(t, -1, r.Winner())
}

func TestStatisticsAdd(t *testing.T) {
	stats := &Statistics{}
	results := []GameResult{
		{Seed: 1, Scores: [Seats]int{200, 100}, Melds: [Seats]int{60, 20}, Declarer: 0, Bid: 150, Tricks: 12, Decisions: 30},
		{Seed: 2, Scores: [Seats]int{100, 140}, Melds: [Seats]int{0, 40}, Declarer: 1, Bid: 160, Tricks: 12, Decisions: 28},
		{Seed: 3, Scores: [Seats]int{110, 110}, Declarer: 0, Bid: 100, Tricks: 12, Decisions: 26},
	}
	for _, r := range results {
		stats.Add(r)
	}
	require.NoError(t, stats.Validate())

	assert.Equal(t, 3, stats.Games)
	assert.InDelta(t, 20.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
	assert.InDelta(t, 5200.0, stats.Variance(), 1e-9)
	assert.Equal(t, 1, stats.Ties)
	assert.Equal(t, 36, stats.Tricks)
	assert.Equal(t, 84, stats.Decisions)

	assert.InDelta(t, 1.0/3.0, stats.WinRate(0), 1e-9)
	assert.InDelta(t, 1.0/3.0, stats.WinRate(1), 1e-9)
	assert.InDelta(t, 410.0/3.0, stats.MeanScore(0), 1e-9)
	assert.InDelta(t, 20.0, stats.MeanMeld(0), 1e-9)
	assert.InDelta(t, 1.0, stats.ContractRate(0), 1e-9)
	assert.InDelta(t, 0.0, stats.ContractRate(1), 1e-9)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
}

func TestStatisticsPercentile(t *testing.T) {
	stats := &Statistics{}
	for i, margin := range []int{-20, 0, 10, 30, 40} {
		stats.Add(GameResult{Seed: int64(i), Scores: [Seats]int{100 + margin, 100}})
	}

	assert.InDelta(t, -20.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 10.0, stats.Percentile(0.5), 1e-9)
	assert.InDelta(t, 35.0, stats.Percentile(0.875), 1e-9)
	assert.InDelta(t, 40.0, stats.Percentile(1), 1e-9)
}

func TestStatisticsValidateDetectsDrift(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Scores: [Seats]int{100, 50}, Declarer: 0, Bid: 80})
	require.NoError(t, stats.Validate())

	stats.Values = append(stats.Values, 1)
	assert.Error(t, stats.Validate())
}
