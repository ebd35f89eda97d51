// Package ranking assigns competition ranks to leaderboard entries.
package ranking

import (
	"math"
	"slices"

	"github.com/pinchbench/pinchboard/internal/models"
)

// Epsilon is the largest percentage difference still treated as a tie.
const Epsilon = 1e-6

// Tied reports whether two percentages are equal within Epsilon.
func Tied(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// CalculateRanks returns a copy of entries sorted by percentage descending and
// ranked with competition ranking (1, 1, 3). Tied entries are ordered by
// timestamp, most recent first. The input slice is not modified.
func CalculateRanks(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	sorted := slices.Clone(entries)
	if len(sorted) == 0 {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b models.LeaderboardEntry) int {
		if !Tied(a.Percentage, b.Percentage) {
			if a.Percentage > b.Percentage {
				return -1
			}
			return 1
		}
		return b.Time().Compare(a.Time())
	})

	for i := range sorted {
		if i > 0 && Tied(sorted[i].Percentage, sorted[i-1].Percentage) {
			sorted[i].Rank = sorted[i-1].Rank
			continue
		}
		sorted[i].Rank = i + 1
	}
	return sorted
}
