package webapi

import (
	"time"

	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/models"
)

// LeaderboardResponse is the ranked, filtered and view-sorted leaderboard.
type LeaderboardResponse struct {
	Version     string                    `json:"version,omitempty"`
	View        string                    `json:"view"`
	Score       models.ScoreMode          `json:"score"`
	Provider    string                    `json:"provider,omitempty"`
	Entries     []models.LeaderboardEntry `json:"entries"`
	Providers   []string                  `json:"providers"`
	TotalRuns   int                       `json:"total_runs"`
	LastUpdated *time.Time                `json:"last_updated"`
}

// VersionsResponse lists benchmark versions and which are current.
type VersionsResponse struct {
	Versions []models.BenchmarkVersion `json:"versions"`
	Current  []string                  `json:"current"`
}

// RunsResponse is one page of individual submissions.
type RunsResponse struct {
	Submissions       []models.SubmissionListItem `json:"submissions"`
	Total             int                         `json:"total"`
	Limit             int                         `json:"limit"`
	Offset            int                         `json:"offset"`
	HasMore           bool                        `json:"has_more"`
	BenchmarkVersion  *string                     `json:"benchmark_version"`
	BenchmarkVersions []models.BenchmarkVersion   `json:"benchmark_versions"`
	Current           []string                    `json:"current"`
}

// SubmissionResponse is a full submission plus rendered task notes keyed by
// task id.
type SubmissionResponse struct {
	Submission models.Submission `json:"submission"`
	Percentage float64           `json:"percentage"`
	NotesHTML  map[string]string `json:"notes_html"`
}

// ScatterResponse adds label placement to the scatter parameters.
type ScatterResponse struct {
	charts.Scatter
	Labels     []charts.LabelRect `json:"labels"`
	HiddenNote string             `json:"hidden_note,omitempty"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
}

// DistributionResponse holds one box per model with enough runs.
type DistributionResponse struct {
	Sort        charts.DistributionSort `json:"sort"`
	Plots       []charts.BoxPlot        `json:"plots"`
	Domain      charts.Domain           `json:"domain"`
	Sufficient  bool                    `json:"sufficient"`
	EmptyReason string                  `json:"empty_reason,omitempty"`
}

// RadarResponse holds the radar series for the selected models.
type RadarResponse struct {
	Axes     []string              `json:"axes"`
	Selected []string              `json:"selected"`
	Colors   map[string]string     `json:"colors"`
	Series   []charts.RadarPoint   `json:"series"`
	Metrics  []charts.RadarMetrics `json:"metrics"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
