package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is a busy indicator
type Spinner interface {
	Stop()
}

// NewSpinner starts a busy indicator on w. Headless it prints the title once.
func NewSpinner(h *Headless, w io.Writer, title string) Spinner {
	if h.IsHeadless() {
		_, _ = fmt.Fprintf(w, "%s\n", title)
		return headlessSpinner{}
	}
	return newInteractiveSpinner(w, title)
}

// Busy runs fn while a spinner is shown
func Busy(h *Headless, w io.Writer, title string, fn func() error) error {
	s := NewSpinner(h, w, title)
	err := fn()
	s.Stop()
	return err
}

type headlessSpinner struct{}

func (headlessSpinner) Stop() {}

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(w io.Writer, title string) *interactiveSpinner {
	// the spinner never reads input so the caller's prompts keep the terminal
	p := tea.NewProgram(newSpinnerModel(title), tea.WithOutput(w), tea.WithInput(nil))
	go func() {
		_, _ = p.Run()
	}()
	return &interactiveSpinner{program: p}
}

func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}
