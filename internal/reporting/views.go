package reporting

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/view"
)

var printer = message.NewPrinter(language.English)

// maxModelWidth bounds the model column in terminal tables.
const maxModelWidth = 40

const missing = "n/a"

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func fmtPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func fmtPercentPtr(v *float64) string {
	if v == nil {
		return missing
	}
	return fmtPercent(*v)
}

func fmtCost(v *float64) string {
	if v == nil {
		return missing
	}
	if *v < 0.01 {
		return fmt.Sprintf("$%.4f", *v)
	}
	return fmt.Sprintf("$%.2f", *v)
}

func fmtSeconds(v *float64) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("%.1fs", *v)
}

func rankCell(rank int) string {
	if m := charts.RankMedal(rank); m != "" {
		return fmt.Sprintf("%d %s", rank, m)
	}
	return fmt.Sprintf("%d", rank)
}

func scoreTone(v *float64) charts.Tone {
	if v == nil {
		return ""
	}
	return charts.PercentageTone(*v)
}

// LeaderboardTable lays out ranked entries for a view mode. The metric column
// follows the mode; the score column follows score.
func LeaderboardTable(entries []models.LeaderboardEntry, mode view.Mode, score models.ScoreMode) Table {
	scoreHeader := "Best"
	if score == models.ScoreAverage {
		scoreHeader = "Average"
	}

	t := Table{Headers: []string{"Rank", "Model", "Provider"}}
	switch mode {
	case view.ModeSpeed:
		t.Headers = append(t.Headers, "Time", scoreHeader, "Runs")
	case view.ModeCost:
		t.Headers = append(t.Headers, "Cost", scoreHeader, "Runs")
	default:
		t.Headers = append(t.Headers, scoreHeader, "Runs")
	}

	for _, e := range entries {
		s := e.Score(score)
		row := []string{rankCell(e.Rank), truncate(e.Model, maxModelWidth), e.Provider}
		tones := []charts.Tone{"", "", ""}
		switch mode {
		case view.ModeSpeed:
			row = append(row, fmtSeconds(e.ExecutionTime(score)))
			tones = append(tones, "")
		case view.ModeCost:
			row = append(row, fmtCost(e.Cost(score)))
			tones = append(tones, "")
		}
		row = append(row, fmtPercentPtr(s), FormatCount(e.Runs()))
		tones = append(tones, scoreTone(s), "")
		t.Rows = append(t.Rows, row)
		t.Tones = append(t.Tones, tones)
	}
	return t
}

// VersionsTable lists benchmark versions.
func VersionsTable(versions []models.BenchmarkVersion) Table {
	t := Table{Headers: []string{"Version", "Created", "Current", "Submissions"}}
	for _, v := range versions {
		current := ""
		if v.IsCurrent {
			current = "yes"
		}
		t.Rows = append(t.Rows, []string{v.ID, v.CreatedAt, current, FormatCount(v.SubmissionCount)})
	}
	return t
}

// RunsTable lists individual submissions with their age relative to now.
func RunsTable(items []models.SubmissionListItem, now time.Time) Table {
	t := Table{Headers: []string{"ID", "Model", "Provider", "Score", "Cost", "Time", "Bench Version", "OpenClaw", "Client", "When"}}
	for _, s := range items {
		when := missing
		if ts := s.Time(); !ts.IsZero() {
			when = humanize.RelTime(ts, now, "ago", "from now")
		}
		cost := "-"
		if s.TotalCostUSD > 0 {
			cost = fmt.Sprintf("$%.2f", s.TotalCostUSD)
		}
		pct := s.ScorePercentage * 100
		t.Rows = append(t.Rows, []string{
			s.ID,
			truncate(s.Model, maxModelWidth),
			s.Provider,
			fmtPercent(pct),
			cost,
			fmt.Sprintf("%.1fm", s.TotalExecutionTimeSeconds/60),
			s.BenchmarkVersion,
			orDash(s.OpenClawVersion),
			orDash(s.ClientVersion),
			when,
		})
		t.Tones = append(t.Tones, []charts.Tone{"", "", "", charts.PercentageTone(pct)})
	}
	return t
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// SubmissionTable lists the task results of one submission.
func SubmissionTable(sub models.Submission) Table {
	t := Table{Headers: []string{"Task", "Category", "Score", "Percent", "Grading", "Time"}}
	for _, r := range sub.TaskResults {
		name := r.TaskName
		if r.TimedOut {
			name += " (timed out)"
		}
		pct := r.Ratio() * 100
		t.Rows = append(t.Rows, []string{
			name,
			charts.CategoryIcon(r.Category) + " " + r.Category,
			fmt.Sprintf("%g/%g", r.Score, r.MaxScore),
			fmt.Sprintf("%.0f%%", pct),
			string(r.GradingType),
			fmtSeconds(r.ExecutionTimeSeconds),
		})
		t.Tones = append(t.Tones, []charts.Tone{"", "", "", charts.PercentageTone(pct)})
	}
	return t
}

// ScatterTable lists plotted points; a star marks the attractive quadrant.
func ScatterTable(s charts.Scatter) Table {
	t := Table{Headers: []string{"Model", "Provider", s.Axis.Label(), "Score", ""}}
	for _, p := range s.Points {
		star := ""
		if s.InAttractiveQuadrant(p) {
			star = "★"
		}
		t.Rows = append(t.Rows, []string{
			truncate(p.Name, maxModelWidth),
			p.Provider,
			s.Axis.FormatTick(p.X),
			fmtPercent(p.Y),
			star,
		})
		t.Tones = append(t.Tones, []charts.Tone{"", "", "", charts.PercentageTone(p.Y)})
	}
	return t
}

// HeatmapTable renders one row per model and one column per task.
func HeatmapTable(h charts.Heatmap) Table {
	t := Table{Headers: []string{"Model"}}
	for _, task := range h.Tasks {
		t.Headers = append(t.Headers, task.TaskID)
	}
	for _, row := range h.Rows {
		cells := []string{truncate(row.Model, maxModelWidth)}
		tones := []charts.Tone{""}
		for _, c := range row.Cells {
			if !c.HasData {
				cells = append(cells, "-")
				tones = append(tones, "")
				continue
			}
			cells = append(cells, fmt.Sprintf("%d%%", c.Percent))
			tones = append(tones, charts.PercentageTone(float64(c.Percent)))
		}
		t.Rows = append(t.Rows, cells)
		t.Tones = append(t.Tones, tones)
	}
	return t
}

// DistributionTable lists box-plot statistics per model.
func DistributionTable(plots []charts.BoxPlot) Table {
	t := Table{Headers: []string{"Model", "Provider", "Runs", "Min", "Q1", "Median", "Q3", "Max", "Best", "Mean 95% CI"}}
	for _, p := range plots {
		t.Rows = append(t.Rows, []string{
			truncate(p.Model, maxModelWidth),
			p.Provider,
			FormatCount(p.Count),
			fmtPercent(p.Min),
			fmtPercent(p.Q1),
			fmtPercent(p.Median),
			fmtPercent(p.Q3),
			fmtPercent(p.Max),
			fmtPercent(p.Best),
			fmt.Sprintf("%.1f-%.1f", p.MeanCI.Lower, p.MeanCI.Upper),
		})
		t.Tones = append(t.Tones, []charts.Tone{"", "", "", "", "", charts.PercentageTone(p.Median)})
	}
	return t
}

// RadarTable renders one row per axis and one column per selected model.
func RadarTable(series []charts.RadarPoint, selected []string) Table {
	t := Table{Headers: append([]string{"Axis"}, selected...)}
	for _, p := range series {
		row := []string{p.Axis}
		tones := []charts.Tone{""}
		for _, m := range selected {
			v, ok := p.Values[m]
			if !ok {
				row = append(row, missing)
				tones = append(tones, "")
				continue
			}
			row = append(row, fmt.Sprintf("%.0f", v))
			tones = append(tones, charts.PercentageTone(v))
		}
		t.Rows = append(t.Rows, row)
		t.Tones = append(t.Tones, tones)
	}
	return t
}
