package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	commentStyle = lipgloss.NewStyle().PaddingLeft(1)
)

var replyStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	MarginLeft(2).
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(lipgloss.Color("240"))

// RenderText renders the board for a terminal.
func RenderText(b model.Board) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("Comments (%d)", len(b.Comments))))
	sb.WriteString("\n")

	if len(b.Comments) == 0 {
		sb.WriteString(mutedStyle.Render("no comments yet"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, c := range b.Comments {
		star := mutedStyle.Render("☆")
		if c.Starred {
			star = starStyle.Render("★")
		}

		line := fmt.Sprintf("%s #%d %s\n%s", star, c.ID, c.Text, mutedStyle.Render(FormatTimestamp(c.Timestamp)))
		sb.WriteString(commentStyle.Render(line))
		sb.WriteString("\n")

		for _, r := range c.Replies {
			reply := fmt.Sprintf("#%d %s\n%s", r.ID, r.Text, mutedStyle.Render(FormatTimestamp(r.Timestamp)))
			sb.WriteString(replyStyle.Render(reply))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
