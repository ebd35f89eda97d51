package statistics

import (
	"math"
	"slices"
)

// Quantile returns the q-th quantile of an ascending slice using linear
// interpolation between closest ranks. When the upper neighbour does not
// exist the lower one is returned as-is. sorted must be non-empty.
func Quantile(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < len(sorted) {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// BoxStats is the five-number summary of a sample plus its mean.
type BoxStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// IQR is the interquartile range Q3-Q1.
func (b BoxStats) IQR() float64 {
	return b.Q3 - b.Q1
}

// Summarize computes BoxStats over values, which need not be sorted.
// An empty input yields the zero BoxStats.
func Summarize(values []float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return BoxStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Mean:   Mean(sorted),
		StdDev: StdDev(sorted),
	}
}
