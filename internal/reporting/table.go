// Package reporting renders leaderboard data for the terminal, as markdown,
// or as JSON.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/pinchbench/pinchboard/internal/charts"
)

// Format selects how command output is written.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported format %q (want table, json or markdown)", s)
}

// Table is a rectangular block of plain-text cells. Tones, when set, is
// indexed like Rows and colors individual cells in terminal output.
type Table struct {
	Headers []string
	Rows    [][]string
	Tones   [][]charts.Tone
}

func (t Table) tone(row, col int) charts.Tone {
	if row >= len(t.Tones) || col >= len(t.Tones[row]) {
		return ""
	}
	return t.Tones[row][col]
}

var toneColors = map[charts.Tone]*color.Color{
	charts.ToneGood: color.New(color.FgGreen),
	charts.ToneFair: color.New(color.FgYellow),
	charts.TonePoor: color.New(color.FgRed),
}

var headerColor = color.New(color.Bold)

// Render writes t in format. JSON output encodes v instead of the table.
func Render(w io.Writer, format Format, t Table, v any) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatMarkdown:
		return WriteMarkdown(w, t)
	default:
		return WriteTable(w, t)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteTable writes an aligned terminal table. Widths are measured in
// terminal cells so emoji and wide runes line up.
func WriteTable(w io.Writer, t Table) error {
	widths := columnWidths(t)

	var b strings.Builder
	for i, h := range t.Headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerColor.Sprint(padRight(h, widths[i])))
	}
	b.WriteString("\n")
	for i := range t.Headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("─", widths[i]))
	}
	b.WriteString("\n")

	for r, row := range t.Rows {
		for c := range t.Headers {
			if c > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			padded := padRight(cell, widths[c])
			if col, ok := toneColors[t.tone(r, c)]; ok {
				padded = col.Sprint(padded)
			}
			b.WriteString(padded)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMarkdown writes t as a GitHub-flavored markdown table.
func WriteMarkdown(w io.Writer, t Table) error {
	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeCells(t.Headers), " | ") + " |\n")
	seps := make([]string, len(t.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		copy(cells, row)
		b.WriteString("| " + strings.Join(escapeCells(cells), " | ") + " |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func columnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if sw := runewidth.StringWidth(row[i]); sw > widths[i] {
				widths[i] = sw
			}
		}
	}
	return widths
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncate shortens s to maxWidth cells, ending with "…" when cut.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
