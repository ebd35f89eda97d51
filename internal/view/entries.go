package view

import (
	"slices"
	"strings"
	"time"

	"github.com/pinchbench/pinchboard/internal/models"
)

// LowScoreCutoff is the percentage below which table rows are collapsed.
const LowScoreCutoff = 40

// FilterByProvider keeps entries whose provider matches case-insensitively.
// An empty provider keeps everything.
func FilterByProvider(entries []models.LeaderboardEntry, provider string) []models.LeaderboardEntry {
	if provider == "" {
		return entries
	}
	out := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Provider, provider) {
			out = append(out, e)
		}
	}
	return out
}

// TotalRuns sums submission counts, treating missing counts as zero.
func TotalRuns(entries []models.LeaderboardEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Runs()
	}
	return total
}

// Providers returns the distinct providers in first-seen order.
func Providers(entries []models.LeaderboardEntry) []string {
	var out []string
	for _, e := range entries {
		if !slices.Contains(out, e.Provider) {
			out = append(out, e.Provider)
		}
	}
	return out
}

// LastUpdated returns the most recent entry timestamp, or the zero time.
func LastUpdated(entries []models.LeaderboardEntry) time.Time {
	var latest time.Time
	for _, e := range entries {
		if t := e.Time(); t.After(latest) {
			latest = t
		}
	}
	return latest
}

// SortForView orders ranked entries for mode. The success and graphs views
// keep rank order. Speed and cost sort ascending by the metric selected by
// score, with missing values last and ties broken by rank.
func SortForView(entries []models.LeaderboardEntry, mode Mode, score models.ScoreMode) []models.LeaderboardEntry {
	out := slices.Clone(entries)

	var metric func(models.LeaderboardEntry) *float64
	switch mode {
	case ModeSpeed:
		metric = func(e models.LeaderboardEntry) *float64 { return e.ExecutionTime(score) }
	case ModeCost:
		metric = func(e models.LeaderboardEntry) *float64 { return e.Cost(score) }
	default:
		slices.SortStableFunc(out, func(a, b models.LeaderboardEntry) int { return a.Rank - b.Rank })
		return out
	}

	slices.SortStableFunc(out, func(a, b models.LeaderboardEntry) int {
		va, vb := metric(a), metric(b)
		switch {
		case va == nil && vb == nil:
			return a.Rank - b.Rank
		case va == nil:
			return 1
		case vb == nil:
			return -1
		case *va < *vb:
			return -1
		case *va > *vb:
			return 1
		}
		return a.Rank - b.Rank
	})
	return out
}

// TableSort selects the leaderboard table column and direction.
type TableSort struct {
	ByDate bool
	Asc    bool
}

// SortTable orders entries by percentage or by timestamp.
func SortTable(entries []models.LeaderboardEntry, s TableSort) []models.LeaderboardEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.LeaderboardEntry) int {
		var c int
		if s.ByDate {
			c = a.Time().Compare(b.Time())
		} else {
			switch {
			case a.Percentage < b.Percentage:
				c = -1
			case a.Percentage > b.Percentage:
				c = 1
			}
		}
		if !s.Asc {
			c = -c
		}
		return c
	})
	return out
}

// SplitLowScores separates entries at or above cutoff from those below it,
// preserving order.
func SplitLowScores(entries []models.LeaderboardEntry, cutoff float64) (visible, low []models.LeaderboardEntry) {
	for _, e := range entries {
		if e.Percentage >= cutoff {
			visible = append(visible, e)
		} else {
			low = append(low, e)
		}
	}
	return visible, low
}

// SortRuns orders submissions by model name, then by score descending.
func SortRuns(items []models.SubmissionListItem) []models.SubmissionListItem {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b models.SubmissionListItem) int {
		if c := strings.Compare(a.Model, b.Model); c != 0 {
			return c
		}
		switch {
		case a.ScorePercentage > b.ScorePercentage:
			return -1
		case a.ScorePercentage < b.ScorePercentage:
			return 1
		}
		return 0
	})
	return out
}
