package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/neuronest/internal/models"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("cancelled")

// ErrHeadless is returned when a prompt is needed but no terminal is attached
var ErrHeadless = errors.New("input required but no terminal is attached")

// Prompter runs interactive forms
type Prompter struct {
	headless *Headless
	theme    *huh.Theme
}

// NewPrompter creates a prompter using the NeuroNest form theme
func NewPrompter(h *Headless) *Prompter {
	return &Prompter{headless: h, theme: newFormTheme()}
}

func (p *Prompter) run(ctx context.Context, groups ...*huh.Group) error {
	if p.headless.IsHeadless() {
		return ErrHeadless
	}
	form := huh.NewForm(groups...).
		WithTheme(p.theme).
		WithAccessible(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Login asks for any credential field that is still empty
func (p *Prompter) Login(ctx context.Context, creds *models.Credentials) error {
	var fields []huh.Field
	if creds.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&creds.Username).
			Validate(required("username")))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password).
			Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return p.run(ctx, huh.NewGroup(fields...).Title("Log in to NeuroNest"))
}

// Signup asks for username, password and confirmation
func (p *Prompter) Signup(ctx context.Context, username, password, confirm *string) error {
	return p.run(ctx, huh.NewGroup(
		huh.NewInput().Title("Username").Value(username).Validate(required("username")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(confirm),
	).Title("Create your account"))
}

// Thought asks for the content and mood of a new thought
func (p *Prompter) Thought(ctx context.Context, payload *models.ThoughtCreate) error {
	mood := string(payload.Mood)
	if mood == "" {
		mood = string(models.MoodNeutral)
	}
	opts := make([]huh.Option[string], len(models.Moods))
	for i, m := range models.Moods {
		opts[i] = huh.NewOption(string(m), string(m))
	}

	err := p.run(ctx, huh.NewGroup(
		huh.NewText().
			Title("What's on your mind?").
			Value(&payload.Content).
			Validate(required("content")),
		huh.NewSelect[string]().
			Title("Mood").
			Options(opts...).
			Value(&mood),
	).Title("Plant a thought"))
	payload.Mood = models.Mood(mood)
	return err
}

// Mood asks how the user feels
func (p *Prompter) Mood(ctx context.Context) (string, error) {
	var mood string
	err := p.run(ctx, huh.NewGroup(
		huh.NewInput().
			Title("How are you feeling?").
			Placeholder("anxious, tired, calm...").
			Value(&mood).
			Validate(required("mood")),
	))
	return mood, err
}

// Retry asks whether a failed operation should be repeated.
// Headless it never retries.
func (p *Prompter) Retry(ctx context.Context) bool {
	if p.headless.IsHeadless() {
		return false
	}
	retry := true
	err := p.run(ctx, huh.NewGroup(
		huh.NewConfirm().
			Title("Retry?").
			Affirmative("Retry").
			Negative("Cancel").
			Value(&retry),
	))
	return err == nil && retry
}

func newFormTheme() *huh.Theme {
	t := huh.ThemeBase()

	green := lipgloss.AdaptiveColor{Light: "#047857", Dark: ColorPrimary}
	indigo := lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: ColorAccent}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	grey := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}
	edge := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(edge)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(green).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(grey)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(green).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(green)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(grey)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(indigo)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(green)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
