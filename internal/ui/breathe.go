package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/neuronest/internal/timer"
)

// breathCycle is one inhale, hold, exhale round
const breathCycle = 12 * time.Second

// BreathPhase is the cue for the given elapsed time
func BreathPhase(elapsed time.Duration) string {
	switch pos := elapsed % breathCycle; {
	case pos < 4*time.Second:
		return "Breathe in"
	case pos < 8*time.Second:
		return "Hold"
	default:
		return "Breathe out"
	}
}

type breathTickMsg time.Duration

type breathDoneMsg struct{}

// BreathingModel is the full-screen breathing session
type BreathingModel struct {
	title   string
	session *timer.Session
	target  time.Duration

	elapsed  time.Duration
	paused   bool
	finished bool
	quit     bool
}

// NewBreathingModel shows session. A zero target runs until the user quits.
func NewBreathingModel(title string, session *timer.Session, target time.Duration) BreathingModel {
	return BreathingModel{title: title, session: session, target: target}
}

func waitForTick(s *timer.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case d := <-s.Ticks():
			return breathTickMsg(d)
		case <-s.Done():
			return breathDoneMsg{}
		}
	}
}

func (m BreathingModel) Init() tea.Cmd {
	return waitForTick(m.session)
}

func (m BreathingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case breathTickMsg:
		m.elapsed = time.Duration(msg)
		if m.target > 0 && m.elapsed >= m.target {
			m.finished = true
			return m, tea.Quit
		}
		return m, waitForTick(m.session)
	case breathDoneMsg:
		m.quit = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			m.paused = m.session.Toggle()
			return m, nil
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m BreathingModel) View() string {
	if m.quit || m.finished {
		return ""
	}
	cue := BreathPhase(m.elapsed)
	status := "space pause · q end session"
	if m.paused {
		cue = "Paused"
		status = "space resume · q end session"
	}

	clock := timer.FormatElapsed(m.elapsed)
	if m.target > 0 {
		clock += " / " + timer.FormatElapsed(m.target)
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(clock),
		"",
		accent.Render(cue),
		"",
		Muted(status),
	}, "\n")
	return Card(m.title, body) + "\n"
}

// Elapsed is the practice time shown when the model exited
func (m BreathingModel) Elapsed() time.Duration { return m.elapsed }

// Finished reports whether the target duration was reached
func (m BreathingModel) Finished() bool { return m.finished }

// RunBreathing runs the session until the target is reached or the user ends it.
// Headless it prints one line per breathing cue change. It returns the practice time.
func RunBreathing(ctx context.Context, h *Headless, w io.Writer, title string, s *timer.Session, target time.Duration) (time.Duration, error) {
	if h.IsHeadless() {
		return runBreathingHeadless(ctx, w, title, s, target), nil
	}

	p := tea.NewProgram(NewBreathingModel(title, s, target), tea.WithContext(ctx), tea.WithOutput(w))
	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return s.Elapsed(), fmt.Errorf("failed to run breathing session: %w", err)
	}
	if m, ok := final.(BreathingModel); ok {
		return m.Elapsed(), nil
	}
	return s.Elapsed(), nil
}

func runBreathingHeadless(ctx context.Context, w io.Writer, title string, s *timer.Session, target time.Duration) time.Duration {
	_, _ = fmt.Fprintf(w, "%s: %s\n", title, BreathPhase(0))
	last := BreathPhase(0)
	for {
		select {
		case <-ctx.Done():
			return s.Elapsed()
		case <-s.Done():
			return s.Elapsed()
		case d := <-s.Ticks():
			if phase := BreathPhase(d); phase != last {
				last = phase
				_, _ = fmt.Fprintf(w, "%s %s\n", timer.FormatElapsed(d), phase)
			}
			if target > 0 && d >= target {
				return d
			}
		}
	}
}
