package reporting

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

var notesRenderer = goldmark.New()

// RenderNotes converts grader notes from markdown to HTML. Raw HTML in the
// notes is not passed through.
func RenderNotes(notes string) (string, error) {
	var buf bytes.Buffer
	if err := notesRenderer.Convert([]byte(notes), &buf); err != nil {
		return "", fmt.Errorf("rendering notes: %w", err)
	}
	return buf.String(), nil
}
