package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/timer"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var (
	mindspaceStart int
	breatheMinutes int
)

var mindspaceCmd = &cobra.Command{
	Use:   "mindspace [mood]",
	Short: "Find a mindfulness practice for how you feel",
	Long: `Describe how you feel and get practices suited to it.
Start one of them right away with --start.

Examples:
  neuronest mindspace anxious
  neuronest mindspace "a bit tired" --start 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMindspace,
}

var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Start a deep breathing session",
	Long: `Start a guided breathing timer. Space pauses and resumes,
q ends the session.

Examples:
  neuronest breathe
  neuronest breathe --minutes 5`,
	Args: cobra.NoArgs,
	RunE: runBreathe,
}

func init() {
	rootCmd.AddCommand(mindspaceCmd)
	rootCmd.AddCommand(breatheCmd)

	mindspaceCmd.Flags().IntVar(&mindspaceStart, "start", 0, "Start the n-th recommended practice")
	breatheCmd.Flags().IntVar(&breatheMinutes, "minutes", 0, "End the session after this many minutes")
}

func runMindspace(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	mood := strings.Join(args, " ")
	if strings.TrimSpace(mood) == "" {
		mood, err = a.prompt.Mood(ctx)
		if errors.Is(err, ui.ErrHeadless) {
			return fmt.Errorf("tell me how you feel, e.g. neuronest mindspace anxious: %w", views.ErrEmptyMood)
		}
		if err != nil {
			return err
		}
	}

	m := views.NewMindspace(a.client)
	err = a.withRetry(ctx, fmt.Sprintf("neuronest mindspace %q", mood), func() error {
		return a.busy("Finding practices...", func() error { return m.SelectMood(ctx, mood) })
	})
	if err != nil {
		return fmt.Errorf("failed to get recommendations: %w", err)
	}

	practices := m.Recommendations.Data()
	if m.Recommendations.Empty() {
		fmt.Fprintf(out, "No practices found for %q.\n", m.Mood())
		fmt.Fprintln(out, ui.Muted("You can always start a breathing session: neuronest breathe"))
		return nil
	}

	fmt.Fprintln(out, ui.Title(fmt.Sprintf("Practices for feeling %s", m.Mood())))
	fmt.Fprintln(out)
	for i, p := range practices {
		fmt.Fprintf(out, "%d. %s (%d min)\n", i+1, p.Title, p.DurationMinutes)
		if p.Description != "" {
			fmt.Fprintf(out, "   %s\n", ui.Muted(p.Description))
		}
	}

	if mindspaceStart == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Muted(fmt.Sprintf("Start one with: neuronest mindspace %q --start <n>", m.Mood())))
		return nil
	}
	if mindspaceStart < 1 || mindspaceStart > len(practices) {
		return fmt.Errorf("no practice %d (choose 1-%d)", mindspaceStart, len(practices))
	}

	p := practices[mindspaceStart-1]
	return practise(ctx, a, m, p, time.Duration(p.DurationMinutes)*time.Minute)
}

func runBreathe(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p := models.Practice{ID: "deep_breathing", Title: "Deep Breathing", DurationMinutes: breatheMinutes}
	return practise(ctx, a, nil, p, time.Duration(breatheMinutes)*time.Minute)
}

// practise runs the timer for p until target (zero means until the user stops)
func practise(ctx context.Context, a *app, m *views.Mindspace, p models.Practice, target time.Duration) error {
	if m == nil {
		m = views.NewMindspace(a.client)
	}
	session := m.StartPractice(ctx, p, a.cfg.Mindspace.Tick)
	defer session.Stop()

	fmt.Fprintln(out, ui.Muted("Breathe deeply and relax. Focus on your breath."))
	elapsed, err := ui.RunBreathing(ctx, a.headless, out, p.Title, session.Session, target)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Session ended after %s", timer.FormatElapsed(elapsed))
	if target > 0 && elapsed >= target {
		msg = fmt.Sprintf("Session complete: %s", timer.FormatElapsed(elapsed))
	}
	fmt.Fprintln(out, ui.Success(msg))
	return nil
}
