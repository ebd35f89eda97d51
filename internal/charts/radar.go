package charts

import (
	"slices"
	"sort"
	"strings"

	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/statistics"
)

// MaxRadarModels caps how many models a radar chart overlays.
const MaxRadarModels = 4

// RadarColors are the overlay colors, assigned by selection order.
var RadarColors = []string{"#22d3ee", "#f97316", "#a855f7", "#22c55e"}

// RadarAxes are the radar dimensions in display order.
var RadarAxes = []string{"Score", "Cost Efficiency", "Speed", "Consistency"}

// RadarMetrics holds one model's 0-100 values on every radar axis.
type RadarMetrics struct {
	Model           string  `json:"model"`
	Provider        string  `json:"provider"`
	Score           float64 `json:"score"`
	CostEfficiency  float64 `json:"cost_efficiency"`
	SpeedEfficiency float64 `json:"speed_efficiency"`
	Consistency     float64 `json:"consistency"`
}

func (m RadarMetrics) axisValue(axis string) float64 {
	switch axis {
	case "Score":
		return m.Score
	case "Cost Efficiency":
		return m.CostEfficiency
	case "Speed":
		return m.SpeedEfficiency
	default:
		return m.Consistency
	}
}

// ComputeRadar normalizes every entry onto the radar axes. Cost and speed are
// inverted so cheaper and faster score higher; consistency is the ratio of
// average to best score. Missing observations map to the neutral value 50.
func ComputeRadar(entries []models.LeaderboardEntry, mode models.ScoreMode) []RadarMetrics {
	var costs, speeds []float64
	for _, e := range entries {
		if c := e.Cost(mode); c != nil && *c > 0 {
			costs = append(costs, *c)
		}
		if s := e.ExecutionTime(mode); s != nil && *s > 0 {
			speeds = append(speeds, *s)
		}
	}

	efficiency := func(v *float64, observed []float64) float64 {
		if v == nil || *v <= 0 {
			return 50
		}
		lo, hi := minMax(observed)
		return 100 - statistics.NormalizeToPercent(*v, lo, hi)
	}

	out := make([]RadarMetrics, 0, len(entries))
	for _, e := range entries {
		score := e.Percentage
		if mode != models.ScoreBest {
			if avg := e.AveragePercent(); avg != nil {
				score = *avg
			}
		}

		consistency := 50.0
		if avg := e.AveragePercent(); avg != nil && e.Percentage > 0 {
			consistency = statistics.Clamp(*avg/e.Percentage*100, 0, 100)
		}

		out = append(out, RadarMetrics{
			Model:           e.Model,
			Provider:        e.Provider,
			Score:           score,
			CostEfficiency:  efficiency(e.Cost(mode), costs),
			SpeedEfficiency: efficiency(e.ExecutionTime(mode), speeds),
			Consistency:     consistency,
		})
	}
	return out
}

// RadarPoint is one axis of the radar with a rounded value per selected model.
type RadarPoint struct {
	Axis   string             `json:"axis"`
	Values map[string]float64 `json:"values"`
}

// RadarSeries builds the per-axis data for the selected models. Unknown model
// names are skipped.
func RadarSeries(metrics []RadarMetrics, selected []string) []RadarPoint {
	byModel := make(map[string]RadarMetrics, len(metrics))
	for _, m := range metrics {
		byModel[m.Model] = m
	}

	points := make([]RadarPoint, 0, len(RadarAxes))
	for _, axis := range RadarAxes {
		p := RadarPoint{Axis: axis, Values: map[string]float64{}}
		for _, name := range selected {
			if m, ok := byModel[name]; ok {
				p.Values[name] = roundHalfUp(m.axisValue(axis))
			}
		}
		points = append(points, p)
	}
	return points
}

// RadarColor returns the overlay color for the i-th selected model.
func RadarColor(i int) string {
	return RadarColors[i%len(RadarColors)]
}

// ToggleSelection adds or removes model. Adding beyond MaxRadarModels evicts
// the oldest selection. The input slice is not modified.
func ToggleSelection(selected []string, model string) []string {
	if slices.Contains(selected, model) {
		out := make([]string, 0, len(selected))
		for _, m := range selected {
			if m != model {
				out = append(out, m)
			}
		}
		return out
	}
	if len(selected) >= MaxRadarModels {
		return append(slices.Clone(selected[len(selected)-MaxRadarModels+1:]), model)
	}
	return append(slices.Clone(selected), model)
}

// SelectModels applies ToggleSelection for each requested model in order,
// ignoring duplicates.
func SelectModels(names []string) []string {
	var selected []string
	for _, m := range names {
		if !slices.Contains(selected, m) {
			selected = ToggleSelection(selected, m)
		}
	}
	return selected
}

// PickerOrder filters entries by a case-insensitive model or provider
// substring and orders them selected-first, then by percentage descending.
func PickerOrder(entries []models.LeaderboardEntry, query string, selected []string) []models.LeaderboardEntry {
	q := strings.ToLower(query)
	out := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if q == "" || strings.Contains(strings.ToLower(e.Model), q) || strings.Contains(strings.ToLower(e.Provider), q) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := slices.Contains(selected, out[i].Model), slices.Contains(selected, out[j].Model)
		if si != sj {
			return si
		}
		return out[i].Percentage > out[j].Percentage
	})
	return out
}
