package reporting

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/view"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"table": FormatTable, "JSON": FormatJSON, "md": FormatMarkdown, "markdown": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestWriteTable_AlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Table{
		Headers: []string{"Rank", "Model"},
		Rows: [][]string{
			{"1 🦞", "a"},
			{"10", "bb"},
		},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rank  Model", lines[0])
	assert.Equal(t, "1 🦞  a    ", lines[2])
	assert.Equal(t, "10    bb   ", lines[3])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, Table{
		Headers: []string{"Model", "Score"},
		Rows:    [][]string{{"a|b", "90.0%"}, {"short"}},
	}))
	assert.Equal(t, "| Model | Score |\n| --- | --- |\n| a\\|b | 90.0% |\n| short |  |\n", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, Table{}, map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n":1}`, buf.String())
}

func TestRenderNotes(t *testing.T) {
	html, err := RenderNotes("Missed the **second** file")
	require.NoError(t, err)
	assert.Equal(t, "<p>Missed the <strong>second</strong> file</p>\n", html)

	html, err = RenderNotes("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "12", FormatCount(12))
}

func TestLeaderboardTable(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{Rank: 1, Model: "claude-opus-4", Provider: "anthropic", Percentage: 91.5, AverageScorePercentage: fp(0.88), BestExecutionTimeSeconds: fp(120), SubmissionCount: ip(1200)},
		{Rank: 4, Model: "gpt-4o", Provider: "openai", Percentage: 60},
	}

	tbl := LeaderboardTable(entries, view.ModeSuccess, models.ScoreBest)
	assert.Equal(t, []string{"Rank", "Model", "Provider", "Best", "Runs"}, tbl.Headers)
	assert.Equal(t, []string{"1 🦞", "claude-opus-4", "anthropic", "91.5%", "1,200"}, tbl.Rows[0])
	assert.Equal(t, charts.ToneGood, tbl.Tones[0][3])
	assert.Equal(t, []string{"4", "gpt-4o", "openai", "60.0%", "0"}, tbl.Rows[1])

	tbl = LeaderboardTable(entries, view.ModeSpeed, models.ScoreAverage)
	assert.Equal(t, []string{"Rank", "Model", "Provider", "Time", "Average", "Runs"}, tbl.Headers)
	assert.Equal(t, "n/a", tbl.Rows[0][3])
	assert.Equal(t, "88.0%", tbl.Rows[0][4])
	assert.Equal(t, "n/a", tbl.Rows[1][4])

	tbl = LeaderboardTable(entries, view.ModeSpeed, models.ScoreBest)
	assert.Equal(t, "120.0s", tbl.Rows[0][3])
}

func TestRunsTable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	oc := "1.2.0"
	tbl := RunsTable([]models.SubmissionListItem{
		{ID: "s1", Model: "m", Provider: "p", ScorePercentage: 0.755, TotalCostUSD: 1.5, TotalExecutionTimeSeconds: 90, BenchmarkVersion: "v1", OpenClawVersion: &oc, Timestamp: "2025-03-01T10:00:00Z"},
		{ID: "s2", Model: "m", Provider: "p", Timestamp: "bad"},
	}, now)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"s1", "m", "p", "75.5%", "$1.50", "1.5m", "v1", "1.2.0", "-", "2 hours ago"}, tbl.Rows[0])
	assert.Equal(t, "-", tbl.Rows[1][4])
	assert.Equal(t, "n/a", tbl.Rows[1][9])
}

func TestHeatmapTable(t *testing.T) {
	h := charts.Heatmap{
		Tasks: []charts.HeatmapTask{{TaskID: "t1"}, {TaskID: "t2"}},
		Rows: []charts.HeatmapRow{{
			Model: "m",
			Cells: []charts.HeatmapCell{{TaskID: "t1", HasData: true, Percent: 90}, {TaskID: "t2"}},
		}},
	}
	tbl := HeatmapTable(h)
	assert.Equal(t, []string{"Model", "t1", "t2"}, tbl.Headers)
	assert.Equal(t, []string{"m", "90%", "-"}, tbl.Rows[0])
	assert.Equal(t, charts.ToneGood, tbl.Tones[0][1])
}

func TestRadarTable(t *testing.T) {
	series := []charts.RadarPoint{{Axis: "Score", Values: map[string]float64{"a": 80}}}
	tbl := RadarTable(series, []string{"a", "b"})
	assert.Equal(t, []string{"Axis", "a", "b"}, tbl.Headers)
	assert.Equal(t, []string{"Score", "80", "n/a"}, tbl.Rows[0])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
