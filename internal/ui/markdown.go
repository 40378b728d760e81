package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pders01/neuronest/internal/models"
)

// JournalMarkdown lays out a journal summary as markdown
func JournalMarkdown(period string, s *models.JournalSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Journal: %s\n\n", period)
	if s == nil {
		b.WriteString("_No summary available._\n")
		return b.String()
	}
	if s.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", s.Summary)
	}
	if s.Insight != "" {
		fmt.Fprintf(&b, "## Insight\n\n%s\n\n", s.Insight)
	}
	if s.Recommendation != "" {
		fmt.Fprintf(&b, "## Recommendation\n\n%s\n\n", s.Recommendation)
	}
	if len(s.Highlights) > 0 {
		b.WriteString("## Highlights\n\n")
		for _, h := range s.Highlights {
			fmt.Fprintf(&b, "- **%s** %s", h.Date, h.Entry)
			if h.Comment != "" {
				fmt.Fprintf(&b, " _%s_", h.Comment)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal. Headless it is returned unchanged.
func RenderMarkdown(h *Headless, md string, width int) (string, error) {
	if h.IsHeadless() {
		return md, nil
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
