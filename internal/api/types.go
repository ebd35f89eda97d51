package api

import "github.com/pinchbench/pinchboard/internal/models"

// LeaderboardEntry is the wire form of one leaderboard row.
type LeaderboardEntry struct {
	Model                       string   `json:"model"`
	Provider                    string   `json:"provider"`
	BestScorePercentage         float64  `json:"best_score_percentage"`
	LatestSubmission            string   `json:"latest_submission"`
	BestSubmissionID            string   `json:"best_submission_id"`
	AverageExecutionTimeSeconds *float64 `json:"average_execution_time_seconds,omitempty"`
	BestExecutionTimeSeconds    *float64 `json:"best_execution_time_seconds,omitempty"`
	AverageCostUSD              *float64 `json:"average_cost_usd,omitempty"`
	BestCostUSD                 *float64 `json:"best_cost_usd,omitempty"`
	SubmissionCount             *int     `json:"submission_count,omitempty"`
	AverageScorePercentage      *float64 `json:"average_score_percentage,omitempty"`
}

// LeaderboardResponse is returned by GET /leaderboard.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// VersionsResponse is returned by GET /benchmark_versions.
type VersionsResponse struct {
	Versions []models.BenchmarkVersion `json:"versions"`
}

// Frontmatter carries the task metadata the API resolves from task files.
type Frontmatter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

// TaskResult is the wire form of one graded task.
type TaskResult struct {
	TaskID               string             `json:"task_id"`
	Frontmatter          *Frontmatter       `json:"frontmatter,omitempty"`
	Score                float64            `json:"score"`
	MaxScore             float64            `json:"max_score"`
	Breakdown            map[string]float64 `json:"breakdown,omitempty"`
	GradingType          models.GradingType `json:"grading_type"`
	TimedOut             bool               `json:"timed_out"`
	Notes                *string            `json:"notes,omitempty"`
	ExecutionTimeSeconds *float64           `json:"execution_time_seconds,omitempty"`
}

// SubmissionMetadata is the optional metadata block of a submission.
type SubmissionMetadata struct {
	RunTimestamp *float64 `json:"run_timestamp,omitempty"`
	TaskCount    *int     `json:"task_count,omitempty"`
}

// SubmissionDetail is the wire form of a full submission.
type SubmissionDetail struct {
	ID              string               `json:"id"`
	Timestamp       string               `json:"timestamp"`
	OpenClawVersion *string              `json:"openclaw_version,omitempty"`
	Model           string               `json:"model"`
	Provider        string               `json:"provider"`
	Tasks           []TaskResult         `json:"tasks"`
	TotalScore      float64              `json:"total_score"`
	MaxScore        float64              `json:"max_score"`
	Metadata        *SubmissionMetadata  `json:"metadata,omitempty"`
	UsageSummary    *models.UsageSummary `json:"usage_summary,omitempty"`
}

// SubmissionDetailResponse is returned by GET /submissions/<id>.
type SubmissionDetailResponse struct {
	Submission SubmissionDetail `json:"submission"`
}

// SubmissionListItem is one row of GET /submissions.
type SubmissionListItem struct {
	ID                        string  `json:"id"`
	Model                     string  `json:"model"`
	Provider                  string  `json:"provider"`
	ScorePercentage           float64 `json:"score_percentage"`
	TotalCostUSD              float64 `json:"total_cost_usd"`
	TotalExecutionTimeSeconds float64 `json:"total_execution_time_seconds"`
	BenchmarkVersion          string  `json:"benchmark_version"`
	OpenClawVersion           *string `json:"openclaw_version,omitempty"`
	ClientVersion             *string `json:"client_version,omitempty"`
	Timestamp                 string  `json:"timestamp"`
}

// SubmissionsResponse is returned by GET /submissions.
type SubmissionsResponse struct {
	Submissions       []SubmissionListItem      `json:"submissions"`
	Total             int                       `json:"total"`
	Limit             int                       `json:"limit"`
	Offset            int                       `json:"offset"`
	HasMore           bool                      `json:"has_more"`
	BenchmarkVersion  *string                   `json:"benchmark_version"`
	BenchmarkVersions []models.BenchmarkVersion `json:"benchmark_versions"`
}

// SubmissionsQuery selects a page of the submissions listing.
type SubmissionsQuery struct {
	Version string
	Limit   int
	Offset  int
}
