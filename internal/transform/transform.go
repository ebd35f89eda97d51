// Package transform converts upstream API records into domain entities.
//
// Every transformer is total: missing optional inputs become nil or a
// documented default, never an error.
package transform

import (
	"strings"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/models"
)

// TransformLeaderboardEntry converts one leaderboard row. Rank is left at zero.
func TransformLeaderboardEntry(e api.LeaderboardEntry) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		Model:                       e.Model,
		Provider:                    normalizeProvider(e.Provider),
		Percentage:                  e.BestScorePercentage * 100,
		AverageScorePercentage:      e.AverageScorePercentage,
		Timestamp:                   e.LatestSubmission,
		SubmissionID:                e.BestSubmissionID,
		BestExecutionTimeSeconds:    e.BestExecutionTimeSeconds,
		AverageExecutionTimeSeconds: e.AverageExecutionTimeSeconds,
		BestCostUSD:                 e.BestCostUSD,
		AverageCostUSD:              e.AverageCostUSD,
		SubmissionCount:             e.SubmissionCount,
	}
}

// TransformLeaderboard converts every row of a leaderboard response.
func TransformLeaderboard(entries []api.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, TransformLeaderboardEntry(e))
	}
	return out
}

// TransformTaskResult converts one graded task, resolving its name and
// category from frontmatter, then the built-in task table, then the task id.
func TransformTaskResult(t api.TaskResult) models.TaskResult {
	name, category := resolveTaskMeta(t.TaskID, t.Frontmatter)

	breakdown := t.Breakdown
	if breakdown == nil {
		breakdown = map[string]float64{}
	}

	return models.TaskResult{
		TaskID:               t.TaskID,
		TaskName:             name,
		Category:             category,
		Score:                t.Score,
		MaxScore:             t.MaxScore,
		Breakdown:            breakdown,
		GradingType:          t.GradingType,
		TimedOut:             t.TimedOut,
		Notes:                t.Notes,
		ExecutionTimeSeconds: t.ExecutionTimeSeconds,
	}
}

// TransformSubmission converts a full submission detail.
func TransformSubmission(s api.SubmissionDetail) models.Submission {
	tasks := make([]models.TaskResult, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		tasks = append(tasks, TransformTaskResult(t))
	}

	version := models.DefaultOpenClawVersion
	if s.OpenClawVersion != nil {
		version = *s.OpenClawVersion
	}

	meta := models.SubmissionMetadata{TaskCount: len(s.Tasks)}
	if s.Metadata != nil {
		if s.Metadata.RunTimestamp != nil {
			meta.RunTimestamp = *s.Metadata.RunTimestamp
		}
		if s.Metadata.TaskCount != nil {
			meta.TaskCount = *s.Metadata.TaskCount
		}
	}

	return models.Submission{
		SubmissionID:    s.ID,
		Timestamp:       s.Timestamp,
		OpenClawVersion: version,
		Model:           s.Model,
		Provider:        normalizeProvider(s.Provider),
		TaskResults:     tasks,
		TotalScore:      s.TotalScore,
		MaxScore:        s.MaxScore,
		Metadata:        meta,
		UsageSummary:    s.UsageSummary,
	}
}

// TransformSubmissionListItem converts one row of the submissions listing.
func TransformSubmissionListItem(s api.SubmissionListItem) models.SubmissionListItem {
	return models.SubmissionListItem{
		ID:                        s.ID,
		Model:                     s.Model,
		Provider:                  normalizeProvider(s.Provider),
		ScorePercentage:           s.ScorePercentage,
		TotalCostUSD:              s.TotalCostUSD,
		TotalExecutionTimeSeconds: s.TotalExecutionTimeSeconds,
		BenchmarkVersion:          s.BenchmarkVersion,
		OpenClawVersion:           s.OpenClawVersion,
		ClientVersion:             s.ClientVersion,
		Timestamp:                 s.Timestamp,
	}
}

// TransformSubmissionList converts every row of a submissions page.
func TransformSubmissionList(items []api.SubmissionListItem) []models.SubmissionListItem {
	out := make([]models.SubmissionListItem, 0, len(items))
	for _, s := range items {
		out = append(out, TransformSubmissionListItem(s))
	}
	return out
}

func resolveTaskMeta(taskID string, fm *api.Frontmatter) (name, category string) {
	known, hasKnown := LookupTask(taskID)

	switch {
	case fm != nil && fm.Name != nil:
		name = *fm.Name
	case hasKnown:
		name = known.Name
	default:
		name = taskID
	}

	switch {
	case fm != nil && fm.Category != nil:
		category = *fm.Category
	case hasKnown:
		category = known.Category
	default:
		category = DefaultCategory
	}
	return name, category
}

func normalizeProvider(p string) string {
	return strings.ToLower(p)
}
