package transform

import (
	"encoding/json"
	"testing"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTransformLeaderboardEntry(t *testing.T) {
	in := api.LeaderboardEntry{
		Model:                  "claude-opus-4",
		Provider:               "Anthropic",
		BestScorePercentage:    0.915,
		AverageScorePercentage: ptr(0.87),
		LatestSubmission:       "2025-03-01T10:00:00Z",
		BestSubmissionID:       "sub-1",
		BestCostUSD:            ptr(1.5),
		SubmissionCount:        ptr(3),
	}

	got := TransformLeaderboardEntry(in)
	assert.Equal(t, 0, got.Rank)
	assert.Equal(t, "anthropic", got.Provider)
	assert.InDelta(t, 91.5, got.Percentage, 1e-9)
	assert.Equal(t, "2025-03-01T10:00:00Z", got.Timestamp)
	assert.Equal(t, "sub-1", got.SubmissionID)
	require.NotNil(t, got.AverageScorePercentage)
	assert.InDelta(t, 0.87, *got.AverageScorePercentage, 1e-9)
	require.NotNil(t, got.SubmissionCount)
	assert.Equal(t, 3, *got.SubmissionCount)
	assert.Nil(t, got.BestExecutionTimeSeconds)
	assert.Nil(t, got.AverageExecutionTimeSeconds)
	assert.Nil(t, got.AverageCostUSD)
}

func TestTransformLeaderboardEntry_NullsMarshalAsNull(t *testing.T) {
	got := TransformLeaderboardEntry(api.LeaderboardEntry{Model: "m", Provider: "p"})
	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{
		"average_score_percentage",
		"best_execution_time_seconds",
		"average_execution_time_seconds",
		"best_cost_usd",
		"average_cost_usd",
		"submission_count",
	} {
		v, ok := decoded[key]
		assert.True(t, ok, "%s should be present", key)
		assert.Nil(t, v, "%s should be null", key)
	}
}

func TestTransformLeaderboard_PreservesOrder(t *testing.T) {
	got := TransformLeaderboard([]api.LeaderboardEntry{
		{Model: "b", Provider: "OpenAI"},
		{Model: "a", Provider: "Google"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Model)
	assert.Equal(t, "google", got[1].Provider)

	assert.Empty(t, TransformLeaderboard(nil))
}

func TestTransformTaskResult_NameResolution(t *testing.T) {
	tests := []struct {
		name         string
		in           api.TaskResult
		wantName     string
		wantCategory string
	}{
		{
			name:         "frontmatter wins",
			in:           api.TaskResult{TaskID: "task_01_calendar", Frontmatter: &api.Frontmatter{Name: ptr("Schedule Meeting"), Category: ptr("productivity")}},
			wantName:     "Schedule Meeting",
			wantCategory: "productivity",
		},
		{
			name:         "fallback table",
			in:           api.TaskResult{TaskID: "task_01_calendar"},
			wantName:     "Calendar Event",
			wantCategory: "calendar",
		},
		{
			name:         "partial frontmatter falls back per field",
			in:           api.TaskResult{TaskID: "task_08_memory", Frontmatter: &api.Frontmatter{Name: ptr("Recall")}},
			wantName:     "Recall",
			wantCategory: "context",
		},
		{
			name:         "unknown task",
			in:           api.TaskResult{TaskID: "task_99_new"},
			wantName:     "task_99_new",
			wantCategory: "other",
		},
		{
			name:         "empty frontmatter without fields",
			in:           api.TaskResult{TaskID: "task_00_sanity", Frontmatter: &api.Frontmatter{}},
			wantName:     "Sanity Check",
			wantCategory: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformTaskResult(tt.in)
			assert.Equal(t, tt.wantName, got.TaskName)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestTransformTaskResult_Defaults(t *testing.T) {
	got := TransformTaskResult(api.TaskResult{
		TaskID:      "task_04_weather",
		Score:       0.5,
		MaxScore:    1,
		GradingType: models.GradingHybrid,
		TimedOut:    true,
	})
	assert.NotNil(t, got.Breakdown)
	assert.Empty(t, got.Breakdown)
	assert.Nil(t, got.Notes)
	assert.Nil(t, got.ExecutionTimeSeconds)
	assert.True(t, got.TimedOut)
	assert.Equal(t, models.GradingHybrid, got.GradingType)
	assert.InDelta(t, 0.5, got.Ratio(), 1e-9)
}

func TestTransformSubmission(t *testing.T) {
	in := api.SubmissionDetail{
		ID:         "sub-9",
		Timestamp:  "2025-03-01T10:00:00Z",
		Model:      "gemini-2.5-pro",
		Provider:   "Google",
		TotalScore: 7,
		MaxScore:   10,
		Tasks: []api.TaskResult{
			{TaskID: "task_00_sanity", Score: 1, MaxScore: 1},
			{TaskID: "task_03_blog", Score: 0.5, MaxScore: 1, Breakdown: map[string]float64{"tone": 0.5}},
		},
	}

	got := TransformSubmission(in)
	assert.Equal(t, "sub-9", got.SubmissionID)
	assert.Equal(t, "google", got.Provider)
	assert.Equal(t, models.DefaultOpenClawVersion, got.OpenClawVersion)
	assert.Equal(t, 0.0, got.Metadata.RunTimestamp)
	assert.Equal(t, 2, got.Metadata.TaskCount)
	assert.True(t, got.TaskCountConsistent())
	assert.InDelta(t, 70, got.Percentage(), 1e-9)
	require.Len(t, got.TaskResults, 2)
	assert.Equal(t, "Blog Post", got.TaskResults[1].TaskName)
	assert.Equal(t, 0.5, got.TaskResults[1].Breakdown["tone"])
	assert.Nil(t, got.UsageSummary)
}

func TestTransformSubmission_ExplicitMetadata(t *testing.T) {
	got := TransformSubmission(api.SubmissionDetail{
		ID:              "sub-1",
		OpenClawVersion: ptr("0.4.2"),
		Metadata:        &api.SubmissionMetadata{RunTimestamp: ptr(1740823200.5), TaskCount: ptr(11)},
		Tasks:           []api.TaskResult{{TaskID: "task_00_sanity"}},
		UsageSummary:    &models.UsageSummary{TotalCostUSD: 0.3},
	})
	assert.Equal(t, "0.4.2", got.OpenClawVersion)
	assert.Equal(t, 1740823200.5, got.Metadata.RunTimestamp)
	assert.Equal(t, 11, got.Metadata.TaskCount)
	assert.False(t, got.TaskCountConsistent())
	require.NotNil(t, got.UsageSummary)
}

func TestTransformSubmissionList(t *testing.T) {
	got := TransformSubmissionList([]api.SubmissionListItem{
		{ID: "a", Provider: "Mistral", ScorePercentage: 0.6, Timestamp: "2025-01-01T00:00:00Z"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "mistral", got[0].Provider)
	assert.Nil(t, got[0].OpenClawVersion)
	assert.Equal(t, 2025, got[0].Time().Year())
}

func TestLookupTask(t *testing.T) {
	m, ok := LookupTask("task_10_workflow")
	require.True(t, ok)
	assert.Equal(t, "Multi-step Workflow", m.Name)
	assert.Equal(t, "complex", m.Category)

	_, ok = LookupTask("nope")
	assert.False(t, ok)
}
