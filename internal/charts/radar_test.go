package charts

import (
	"testing"

	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func radarEntries() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{
			Model: "a", Provider: "openai", Percentage: 90, AverageScorePercentage: f(0.81),
			BestCostUSD: f(1), AverageCostUSD: f(1),
			BestExecutionTimeSeconds: f(10), AverageExecutionTimeSeconds: f(10),
		},
		{
			Model: "b", Provider: "google", Percentage: 60,
			BestCostUSD: f(3), AverageCostUSD: f(3),
		},
		{
			Model: "c", Provider: "meta", Percentage: 0, AverageScorePercentage: f(0.5),
			BestExecutionTimeSeconds: f(30), AverageExecutionTimeSeconds: f(30),
		},
	}
}

func TestComputeRadar_Average(t *testing.T) {
	got := ComputeRadar(radarEntries(), models.ScoreAverage)
	require.Len(t, got, 3)

	a, b, c := got[0], got[1], got[2]
	assert.InDelta(t, 81, a.Score, 1e-9)
	assert.InDelta(t, 100, a.CostEfficiency, 1e-9)
	assert.InDelta(t, 100, a.SpeedEfficiency, 1e-9)
	assert.InDelta(t, 90, a.Consistency, 1e-9)

	// No average falls back to the best score.
	assert.Equal(t, 60.0, b.Score)
	assert.Equal(t, 0.0, b.CostEfficiency)
	assert.Equal(t, 50.0, b.SpeedEfficiency)
	assert.Equal(t, 50.0, b.Consistency)

	assert.InDelta(t, 50, c.Score, 1e-9)
	assert.Equal(t, 50.0, c.CostEfficiency)
	assert.Equal(t, 0.0, c.SpeedEfficiency)
	// A zero best score makes consistency undefined.
	assert.Equal(t, 50.0, c.Consistency)
}

func TestComputeRadar_Best(t *testing.T) {
	got := ComputeRadar(radarEntries(), models.ScoreBest)
	assert.Equal(t, 90.0, got[0].Score)
	assert.Equal(t, 0.0, got[2].Score)
}

func TestComputeRadar_SingleObservationIsNeutral(t *testing.T) {
	got := ComputeRadar([]models.LeaderboardEntry{
		{Model: "solo", Percentage: 50, BestCostUSD: f(2)},
	}, models.ScoreBest)
	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].CostEfficiency)
}

func TestRadarSeries(t *testing.T) {
	metrics := ComputeRadar(radarEntries(), models.ScoreAverage)
	series := RadarSeries(metrics, []string{"a", "missing", "b"})

	require.Len(t, series, 4)
	assert.Equal(t, "Score", series[0].Axis)
	assert.Equal(t, map[string]float64{"a": 81, "b": 60}, series[0].Values)
	assert.Equal(t, "Consistency", series[3].Axis)
	assert.Equal(t, 90.0, series[3].Values["a"])

	for _, p := range RadarSeries(metrics, nil) {
		assert.Empty(t, p.Values)
	}
}

func TestToggleSelection(t *testing.T) {
	sel := []string{"a", "b", "c", "d"}

	got := ToggleSelection(sel, "e")
	assert.Equal(t, []string{"b", "c", "d", "e"}, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, sel)

	assert.Equal(t, []string{"a", "c", "d"}, ToggleSelection(sel, "b"))
	assert.Equal(t, []string{"x"}, ToggleSelection(nil, "x"))
}

func TestSelectModels(t *testing.T) {
	assert.Equal(t, []string{"b", "c", "d", "e"}, SelectModels([]string{"a", "b", "c", "d", "e"}))
	assert.Equal(t, []string{"a", "b"}, SelectModels([]string{"a", "b", "a"}))
	assert.Len(t, SelectModels([]string{"1", "2", "3", "4", "5", "6"}), MaxRadarModels)
}

func TestRadarColor(t *testing.T) {
	assert.Equal(t, "#22d3ee", RadarColor(0))
	assert.Equal(t, "#22c55e", RadarColor(3))
	assert.Equal(t, "#22d3ee", RadarColor(4))
}

func TestPickerOrder(t *testing.T) {
	entries := radarEntries()

	got := PickerOrder(entries, "", []string{"c"})
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Model)
	assert.Equal(t, "a", got[1].Model)
	assert.Equal(t, "b", got[2].Model)

	got = PickerOrder(entries, "GOO", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Model)
}
