package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

func sampleBoard() model.Board {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 123000000, time.UTC)
	return model.Board{
		Comments: []model.Comment{
			{
				ID:        1,
				Text:      "<script>alert(1)</script>",
				Timestamp: ts,
				Starred:   true,
				Replies: []model.Reply{
					{ID: 1, Text: "first reply", Timestamp: ts.Add(time.Minute)},
				},
			},
			{ID: 2, Text: "plain", Timestamp: ts.Add(time.Hour), Replies: []model.Reply{}},
		},
		NewCommentText: "draft",
		ReplyText:      "shared",
		Revision:       9,
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 13, 0, 0, 5000000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-03-01T12:00:00.005Z", FormatTimestamp(ts))
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleBoard()))
	page := buf.String()

	assert.Contains(t, page, "What's on your mind?")
	assert.Contains(t, page, "Sort by Latest")
	assert.Contains(t, page, "Sort by Most Replies")
	assert.Contains(t, page, `data-revision="9"`)
	assert.Contains(t, page, `value="draft"`)
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "2024-03-01T12:00:00.123Z")
	assert.Contains(t, page, `action="/comments/1/replies/1/delete"`)
	assert.Contains(t, page, "star-icon starred")
	assert.Equal(t, 1, strings.Count(page, "star-icon starred"))
	// the shared reply draft shows in every reply box
	assert.Equal(t, 2, strings.Count(page, `value="shared"`))
}

func TestRenderHTMLKeepsOrder(t *testing.T) {
	b := sampleBoard()
	b.Comments[0], b.Comments[1] = b.Comments[1], b.Comments[0]

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, b))
	page := buf.String()

	assert.Less(t, strings.Index(page, `id="comment-2"`), strings.Index(page, `id="comment-1"`))
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleBoard())

	assert.Contains(t, out, "Comments (2)")
	assert.Contains(t, out, "★")
	assert.Contains(t, out, "first reply")
	assert.Contains(t, out, "#2 plain")
	assert.Less(t, strings.Index(out, "first reply"), strings.Index(out, "plain"))
}

func TestRenderTextEmpty(t *testing.T) {
	assert.Contains(t, RenderText(model.Empty()), "no comments yet")
}
