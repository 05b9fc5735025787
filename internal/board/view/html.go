// Package view turns board snapshots into output. Renderers are pure: the
// same snapshot always yields the same bytes.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(
	template.New("board.html").
		Funcs(template.FuncMap{"timestamp": FormatTimestamp}).
		ParseFS(templateFS, "templates/board.html"),
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// RenderHTML writes the full board page. Output is buffered so a template
// failure never leaves a half-written page.
func RenderHTML(w io.Writer, b model.Board) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, b); err != nil {
		return fmt.Errorf("render board: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
