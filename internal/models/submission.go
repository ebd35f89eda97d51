package models

import "time"

// GradingType identifies how a task was graded.
type GradingType string

const (
	GradingAutomated GradingType = "automated"
	GradingLLMJudge  GradingType = "llm_judge"
	GradingHybrid    GradingType = "hybrid"
)

// DefaultOpenClawVersion is used when a submission does not report the
// OpenClaw version it ran against.
const DefaultOpenClawVersion = "unknown"

// Submission is one full benchmark run for one model.
type Submission struct {
	SubmissionID    string             `json:"submission_id"`
	Timestamp       string             `json:"timestamp"`
	OpenClawVersion string             `json:"openclaw_version"`
	Model           string             `json:"model"`
	Provider        string             `json:"provider"`
	TaskResults     []TaskResult       `json:"task_results"`
	TotalScore      float64            `json:"total_score"`
	MaxScore        float64            `json:"max_score"`
	Metadata        SubmissionMetadata `json:"metadata"`
	UsageSummary    *UsageSummary      `json:"usage_summary,omitempty"`
}

type SubmissionMetadata struct {
	RunTimestamp float64 `json:"run_timestamp"`
	TaskCount    int     `json:"task_count"`
}

// UsageSummary holds token and cost totals for a run.
type UsageSummary struct {
	TotalInputTokens  int     `json:"total_input_tokens,omitempty"`
	TotalOutputTokens int     `json:"total_output_tokens,omitempty"`
	TotalTokens       int     `json:"total_tokens,omitempty"`
	TotalCostUSD      float64 `json:"total_cost_usd,omitempty"`
	RequestCount      int     `json:"request_count,omitempty"`
}

// Percentage returns total_score/max_score on the 0-100 scale.
func (s Submission) Percentage() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return s.TotalScore / s.MaxScore * 100
}

// TaskCountConsistent reports whether the number of task results matches
// metadata.task_count. The check is advisory; nothing rejects a mismatch.
func (s Submission) TaskCountConsistent() bool {
	return len(s.TaskResults) == s.Metadata.TaskCount
}

// TaskResult is one task's grading outcome within a submission.
type TaskResult struct {
	TaskID               string             `json:"task_id"`
	TaskName             string             `json:"task_name"`
	Category             string             `json:"category"`
	Score                float64            `json:"score"`
	MaxScore             float64            `json:"max_score"`
	Breakdown            map[string]float64 `json:"breakdown"`
	GradingType          GradingType        `json:"grading_type"`
	TimedOut             bool               `json:"timed_out"`
	Notes                *string            `json:"notes,omitempty"`
	ExecutionTimeSeconds *float64           `json:"execution_time_seconds"`
}

// Ratio returns score/max_score, or 0 when max_score is zero.
func (t TaskResult) Ratio() float64 {
	if t.MaxScore == 0 {
		return 0
	}
	return t.Score / t.MaxScore
}

// SubmissionListItem is the summary row returned by the submissions listing.
type SubmissionListItem struct {
	ID                        string  `json:"id"`
	Model                     string  `json:"model"`
	Provider                  string  `json:"provider"`
	ScorePercentage           float64 `json:"score_percentage"`
	TotalCostUSD              float64 `json:"total_cost_usd"`
	TotalExecutionTimeSeconds float64 `json:"total_execution_time_seconds"`
	BenchmarkVersion          string  `json:"benchmark_version"`
	OpenClawVersion           *string `json:"openclaw_version"`
	ClientVersion             *string `json:"client_version"`
	Timestamp                 string  `json:"timestamp"`
}

// Time parses Timestamp, yielding the zero time when it cannot be parsed.
func (s SubmissionListItem) Time() time.Time {
	return ParseTimestamp(s.Timestamp)
}
