package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/timer"
)

func headless() *Headless {
	h := NewHeadless()
	h.Force(true)
	return h
}

func TestHeadlessForce(t *testing.T) {
	h := NewHeadless()
	h.Force(true)
	if !h.IsHeadless() {
		t.Error("expected forced headless")
	}
	h.Force(false)
	if h.IsHeadless() {
		t.Error("expected forced interactive")
	}

	var nilHeadless *Headless
	if !nilHeadless.IsHeadless() {
		t.Error("expected nil manager to be headless")
	}
}

func TestStageGlyph(t *testing.T) {
	tests := []struct {
		stage int
		want  string
	}{
		{0, "🌱"},
		{1, "🌿"},
		{2, "🌿"},
		{3, "🌸"},
		{4, "?"},
		{-1, "?"},
	}

	for _, tt := range tests {
		if got := StageGlyph(tt.stage); got != tt.want {
			t.Errorf("stage %d: expected %q, got %q", tt.stage, tt.want, got)
		}
	}
}

func TestThoughtLine(t *testing.T) {
	line := ThoughtLine(models.Thought{ID: 12, Content: "walk outside", Mood: models.MoodPositive, GrowthStage: 1})
	for _, want := range []string{"#12", "Sprout", "walk outside", "positive"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
}

func TestThoughtDetailFullyGrown(t *testing.T) {
	out := ThoughtDetail(models.Thought{ID: 3, Content: "bloom", Mood: models.MoodNeutral, GrowthStage: models.MaxGrowthStage})
	if !strings.Contains(out, "Fully grown") {
		t.Errorf("expected fully grown note, got %q", out)
	}
	if !strings.Contains(out, "Flowering") {
		t.Errorf("expected stage name, got %q", out)
	}
}

func TestErrorBoxContainsMessage(t *testing.T) {
	if out := ErrorBox("Could not reach the NeuroNest server"); !strings.Contains(out, "Could not reach the NeuroNest server") {
		t.Errorf("unexpected error box %q", out)
	}
}

func TestThoughtErrorShowsThoughtAndMessage(t *testing.T) {
	out := ThoughtError(models.Thought{ID: 7, Content: "call mum", Mood: models.MoodNeutral}, "Thought not found")
	for _, want := range []string{"Thought not found", "#7", "call mum"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestHeadlessSpinnerPrintsTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Busy(headless(), &buf, "Loading thoughts...", func() error { return errors.New("boom") })
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected fn error to be returned, got %v", err)
	}
	if buf.String() != "Loading thoughts...\n" {
		t.Errorf("expected title line, got %q", buf.String())
	}
}

func TestJournalMarkdown(t *testing.T) {
	md := JournalMarkdown("past week", &models.JournalSummary{
		Summary:        "Steady week",
		Insight:        "Mornings help",
		Recommendation: "Keep walking",
		Highlights:     []models.Highlight{{Date: "2026-10-12", Entry: "Long walk", Comment: "felt calm"}},
	})

	for _, want := range []string{"# Journal: past week", "## Summary", "Steady week", "## Insight", "## Recommendation", "**2026-10-12** Long walk _felt calm_"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in markdown:\n%s", want, md)
		}
	}

	if empty := JournalMarkdown("past week", nil); !strings.Contains(empty, "No summary available") {
		t.Errorf("expected empty notice, got %q", empty)
	}
}

func TestRenderMarkdownHeadlessPassthrough(t *testing.T) {
	out, err := RenderMarkdown(headless(), "# hi", 40)
	if err != nil {
		t.Fatal(err)
	}
	if out != "# hi" {
		t.Errorf("expected raw markdown, got %q", out)
	}
}

func TestPrompterHeadless(t *testing.T) {
	p := NewPrompter(headless())
	if p.Retry(context.Background()) {
		t.Error("expected headless retry to decline")
	}
	creds := models.Credentials{}
	if err := p.Login(context.Background(), &creds); !errors.Is(err, ErrHeadless) {
		t.Errorf("expected ErrHeadless, got %v", err)
	}
	full := models.Credentials{Username: "alice", Password: "secret1"}
	if err := p.Login(context.Background(), &full); err != nil {
		t.Errorf("expected no prompt when credentials are given, got %v", err)
	}
}

func TestBreathPhase(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Breathe in"},
		{3 * time.Second, "Breathe in"},
		{4 * time.Second, "Hold"},
		{8 * time.Second, "Breathe out"},
		{12 * time.Second, "Breathe in"},
	}

	for _, tt := range tests {
		if got := BreathPhase(tt.elapsed); got != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.elapsed, tt.want, got)
		}
	}
}

func TestBreathingModelUpdate(t *testing.T) {
	s := timer.Start(context.Background(), time.Hour)
	defer s.Stop()

	m := NewBreathingModel("Deep Breathing", s, 2*time.Second)

	next, cmd := m.Update(breathTickMsg(time.Second))
	m = next.(BreathingModel)
	if m.Elapsed() != time.Second || cmd == nil {
		t.Fatalf("expected elapsed 1s and another wait, got %v", m.Elapsed())
	}
	if !strings.Contains(m.View(), "0:01 / 0:02") {
		t.Errorf("expected clock in view, got %q", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(BreathingModel)
	if !s.Paused() || !strings.Contains(m.View(), "Paused") {
		t.Error("expected space to pause the session")
	}

	next, _ = m.Update(breathTickMsg(2 * time.Second))
	m = next.(BreathingModel)
	if !m.Finished() {
		t.Error("expected session to finish at the target")
	}
}

func TestBreathingModelQuit(t *testing.T) {
	s := timer.Start(context.Background(), time.Hour)
	defer s.Stop()

	m := NewBreathingModel("Deep Breathing", s, 0)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(BreathingModel).View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestRunBreathingHeadlessStopsAtTarget(t *testing.T) {
	s := timer.Start(context.Background(), 5*time.Millisecond)
	defer s.Stop()

	var buf bytes.Buffer
	elapsed, err := RunBreathing(context.Background(), headless(), &buf, "Deep Breathing", s, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if elapsed < 20*time.Millisecond {
		t.Errorf("expected at least 20ms, got %v", elapsed)
	}
	if !strings.HasPrefix(buf.String(), "Deep Breathing: Breathe in") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
