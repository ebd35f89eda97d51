package models

import "time"

// LeaderboardEntry is one model's aggregate standing on the leaderboard.
//
// Nullable aggregates are pointers so they marshal as JSON null rather than
// being dropped. Rank is zero until ranking.CalculateRanks assigns it.
type LeaderboardEntry struct {
	Rank                        int      `json:"rank"`
	Model                       string   `json:"model"`
	Provider                    string   `json:"provider"`
	Percentage                  float64  `json:"percentage"`
	AverageScorePercentage      *float64 `json:"average_score_percentage"`
	Timestamp                   string   `json:"timestamp"`
	SubmissionID                string   `json:"submission_id"`
	BestExecutionTimeSeconds    *float64 `json:"best_execution_time_seconds"`
	AverageExecutionTimeSeconds *float64 `json:"average_execution_time_seconds"`
	BestCostUSD                 *float64 `json:"best_cost_usd"`
	AverageCostUSD              *float64 `json:"average_cost_usd"`
	SubmissionCount             *int     `json:"submission_count"`
}

// Time parses Timestamp. Unparseable or empty timestamps yield the zero time.
func (e LeaderboardEntry) Time() time.Time {
	return ParseTimestamp(e.Timestamp)
}

// AveragePercent returns the average score on the 0-100 scale, or nil.
func (e LeaderboardEntry) AveragePercent() *float64 {
	if e.AverageScorePercentage == nil {
		return nil
	}
	v := *e.AverageScorePercentage * 100
	return &v
}

// BenchmarkVersion describes one dataset snapshot of the benchmark.
type BenchmarkVersion struct {
	ID              string `json:"id"`
	CreatedAt       string `json:"created_at"`
	IsCurrent       bool   `json:"is_current"`
	SubmissionCount int    `json:"submission_count"`
}

// CurrentVersionIDs returns the ids of all versions flagged as current.
func CurrentVersionIDs(versions []BenchmarkVersion) []string {
	var ids []string
	for _, v := range versions {
		if v.IsCurrent {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// ParseTimestamp accepts RFC 3339 timestamps with or without fractional
// seconds, and the zone-less form some runners emit.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ScoreMode selects whether best-run or average-run figures are shown.
type ScoreMode string

const (
	ScoreBest    ScoreMode = "best"
	ScoreAverage ScoreMode = "average"
)

// Score returns the entry's score on the 0-100 scale for mode. In average
// mode it is nil when the API did not report an average.
func (e LeaderboardEntry) Score(mode ScoreMode) *float64 {
	if mode == ScoreBest {
		v := e.Percentage
		return &v
	}
	return e.AveragePercent()
}

// Cost returns the best or average cost in USD for mode.
func (e LeaderboardEntry) Cost(mode ScoreMode) *float64 {
	if mode == ScoreBest {
		return e.BestCostUSD
	}
	return e.AverageCostUSD
}

// ExecutionTime returns the best or average execution time in seconds for mode.
func (e LeaderboardEntry) ExecutionTime(mode ScoreMode) *float64 {
	if mode == ScoreBest {
		return e.BestExecutionTimeSeconds
	}
	return e.AverageExecutionTimeSeconds
}

// Runs returns SubmissionCount, treating a missing count as zero.
func (e LeaderboardEntry) Runs() int {
	if e.SubmissionCount == nil {
		return 0
	}
	return *e.SubmissionCount
}
