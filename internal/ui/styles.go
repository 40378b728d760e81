package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/neuronest/internal/models"
)

// Palette
const (
	ColorPrimary = "#34D399"
	ColorAccent  = "#818CF8"
	ColorWarning = "#FBBF24"
	ColorError   = "#F87171"
	ColorText    = "#E5E7EB"
	ColorMuted   = "#9CA3AF"
	ColorBorder  = "#4B5563"
)

var (
	primary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: ColorPrimary})
	accent  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: ColorAccent})
	warning = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: ColorWarning})
	danger  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError})
	muted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: ColorMuted})
	border  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder})
)

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Padding(0, 2)
}

// Card renders content inside a rounded box under a bold title
func Card(title, content string) string {
	body := primary.Bold(true).Render(title)
	if content != "" {
		body += "\n\n" + content
	}
	return cardStyle().Render(body)
}

// SuccessCard renders a ✓ line followed by optional details
func SuccessCard(title string, details ...string) string {
	var body strings.Builder
	body.WriteString(primary.Render("✓") + " " + title)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}
	return cardStyle().Render(body.String())
}

// ErrorBox renders a failure message in a red-bordered box
func ErrorBox(msg string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(danger.GetForeground()).
		Padding(0, 1).
		Render(danger.Render("✗") + " " + msg)
}

// ThoughtError renders the message of a failed operation above the thought it hit
func ThoughtError(t models.Thought, msg string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(danger.GetForeground()).
		Padding(0, 1).
		Render(danger.Render("✗") + " " + msg + "\n" + ThoughtLine(t))
}

// WarningBox renders a highlighted notice
func WarningBox(title, msg string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warning.GetForeground()).
		Padding(0, 1).
		Render(warning.Bold(true).Render(title) + "\n" + msg)
}

// Title renders a section heading
func Title(s string) string {
	return accent.Bold(true).Render(s)
}

// Muted renders secondary text
func Muted(s string) string {
	return muted.Render(s)
}

// Success renders a ✓ line
func Success(s string) string {
	return primary.Render("✓") + " " + s
}

var stageGlyphs = [...]string{"🌱", "🌿", "🌿", "🌸"}

// StageGlyph is the plant shown for a growth stage
func StageGlyph(stage int) string {
	if stage < 0 || stage >= len(stageGlyphs) {
		return "?"
	}
	return stageGlyphs[stage]
}

// ThoughtLine renders one thought as a list row
func ThoughtLine(t models.Thought) string {
	return fmt.Sprintf("%s #%-4d %-9s %s  %s",
		StageGlyph(t.GrowthStage),
		t.ID,
		models.StageName(t.GrowthStage),
		moodLabel(t.Mood),
		t.Content,
	)
}

// ThoughtDetail renders the full detail card of a thought
func ThoughtDetail(t models.Thought) string {
	lines := []string{
		t.Content,
		"",
		fmt.Sprintf("Mood:          %s", moodLabel(t.Mood)),
		fmt.Sprintf("Growth stage:  %s (%d/%d)", models.StageName(t.GrowthStage), t.GrowthStage, models.MaxGrowthStage),
		fmt.Sprintf("Planted:       %s", t.CreatedAt.Local().Format("Jan 2, 2006 15:04")),
		fmt.Sprintf("Last watered:  %s", t.LastWateredAt.Local().Format("Jan 2, 2006 15:04")),
	}
	if !t.CanWater() {
		lines = append(lines, "", Muted("Fully grown"))
	}
	return Card(fmt.Sprintf("%s Thought #%d", StageGlyph(t.GrowthStage), t.ID), strings.Join(lines, "\n"))
}

func moodLabel(m models.Mood) string {
	switch m {
	case models.MoodPositive:
		return primary.Render(string(m))
	case models.MoodNegative:
		return danger.Render(string(m))
	default:
		return muted.Render(string(m))
	}
}
