package charts

import (
	"math"
	"sort"
	"strings"

	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/statistics"
)

// DistributionSort orders box plot rows.
type DistributionSort string

const (
	DistributionByMedian DistributionSort = "median"
	DistributionByBest   DistributionSort = "best"
	DistributionBySpread DistributionSort = "spread"
)

// ParseDistributionSort maps user input to a DistributionSort, defaulting to median.
func ParseDistributionSort(s string) DistributionSort {
	switch DistributionSort(s) {
	case DistributionByBest:
		return DistributionByBest
	case DistributionBySpread:
		return DistributionBySpread
	}
	return DistributionByMedian
}

// MinDistributionSamples is the fewest submissions a model needs to get a box.
const MinDistributionSamples = 2

// bootstrapSeed keeps MeanCI stable across identical requests.
const bootstrapSeed = 1

// BoxPlot is the score distribution of one model across its submissions.
type BoxPlot struct {
	Model    string                        `json:"model"`
	Provider string                        `json:"provider"`
	Color    string                        `json:"color"`
	Min      float64                       `json:"min"`
	Q1       float64                       `json:"q1"`
	Median   float64                       `json:"median"`
	Q3       float64                       `json:"q3"`
	Max      float64                       `json:"max"`
	Best     float64                       `json:"best"`
	Count    int                           `json:"count"`
	Scores   []float64                     `json:"scores"`
	MeanCI   statistics.ConfidenceInterval `json:"mean_ci"`
}

// Spread is the interquartile range.
func (b BoxPlot) Spread() float64 {
	return b.Q3 - b.Q1
}

// BuildDistribution groups submissions by model and summarizes each model
// with at least MinDistributionSamples runs. Scores are on the 0-100 scale.
// Best is the model's leaderboard percentage when entries has it, otherwise
// its highest observed score.
func BuildDistribution(subs []models.SubmissionListItem, entries []models.LeaderboardEntry, order DistributionSort) []BoxPlot {
	type group struct {
		provider string
		scores   []float64
	}
	var modelOrder []string
	groups := map[string]*group{}
	for _, s := range subs {
		g, ok := groups[s.Model]
		if !ok {
			g = &group{provider: s.Provider}
			groups[s.Model] = g
			modelOrder = append(modelOrder, s.Model)
		}
		g.scores = append(g.scores, s.ScorePercentage*100)
	}

	best := map[string]float64{}
	for i := len(entries) - 1; i >= 0; i-- {
		best[entries[i].Model] = entries[i].Percentage
	}

	plots := []BoxPlot{}
	for _, model := range modelOrder {
		g := groups[model]
		if len(g.scores) < MinDistributionSamples {
			continue
		}
		st := statistics.Summarize(g.scores)
		sorted := append([]float64(nil), g.scores...)
		sort.Float64s(sorted)

		b := BoxPlot{
			Model:    model,
			Provider: strings.ToLower(g.provider),
			Color:    ProviderColor(g.provider),
			Min:      st.Min,
			Q1:       st.Q1,
			Median:   st.Median,
			Q3:       st.Q3,
			Max:      st.Max,
			Best:     st.Max,
			Count:    st.Count,
			Scores:   sorted,
			MeanCI:   statistics.BootstrapCIWithSeed(sorted, 0.95, bootstrapSeed),
		}
		if pct, ok := best[model]; ok {
			b.Best = pct
		}
		plots = append(plots, b)
	}

	switch order {
	case DistributionBySpread:
		sort.SliceStable(plots, func(i, j int) bool { return plots[i].Spread() > plots[j].Spread() })
	case DistributionByBest:
		sort.SliceStable(plots, func(i, j int) bool { return plots[i].Max > plots[j].Max })
	default:
		sort.SliceStable(plots, func(i, j int) bool { return plots[i].Median > plots[j].Median })
	}
	return plots
}

// DistributionDomain pads the overall score range of plots to multiples of 5.
// No plots yields [0, 100].
func DistributionDomain(plots []BoxPlot) Domain {
	if len(plots) == 0 {
		return Domain{Min: 0, Max: 100}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range plots {
		lo = math.Min(lo, p.Min)
		hi = math.Max(hi, p.Max)
	}
	return paddedPercentDomain(lo, hi)
}

// DistributionEmptyReason is shown when no model has enough submissions.
const DistributionEmptyReason = "Not enough data. Models need at least 2 submissions to show distribution."
