package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var plantMood string

var growCmd = &cobra.Command{
	Use:   "grow",
	Short: "Show your growth space",
	Long: `List every thought you have planted with its growth stage.

Plant new thoughts with "neuronest plant" and help them grow with
"neuronest water <id>".`,
	Args: cobra.NoArgs,
	RunE: runGrow,
}

var plantCmd = &cobra.Command{
	Use:   "plant [thought]",
	Short: "Plant a new thought",
	Long: `Plant a new thought seed. It starts as a seed and grows each time
you water it.

Examples:
  neuronest plant "I handled the meeting well" --mood positive
  neuronest plant`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlant,
}

var waterCmd = &cobra.Command{
	Use:   "water <id>",
	Short: "Water a thought so it grows one stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runWater,
}

func init() {
	rootCmd.AddCommand(growCmd)
	rootCmd.AddCommand(plantCmd)
	rootCmd.AddCommand(waterCmd)

	plantCmd.Flags().StringVarP(&plantMood, "mood", "m", "", "Mood: positive, neutral or negative (default neutral)")
}

func runGrow(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	g := views.NewGrowth(a.client)
	err = a.withRetry(ctx, "neuronest grow", func() error {
		return a.busy("Loading thoughts...", func() error { return g.Load(ctx) })
	})
	if err != nil {
		return fmt.Errorf("failed to load thoughts: %w", err)
	}

	fmt.Fprintln(out, ui.Title("Growth Space"))
	fmt.Fprintln(out)
	printThoughts(g.List(), g.Thoughts.Empty())
	return nil
}

func printThoughts(thoughts []models.Thought, empty bool) {
	if empty || len(thoughts) == 0 {
		fmt.Fprintln(out, "Nothing planted yet.")
		fmt.Fprintln(out, ui.Muted(`Plant your first thought with: neuronest plant "..."`))
		return
	}
	for _, t := range thoughts {
		fmt.Fprintln(out, ui.ThoughtLine(t))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Muted("Water a thought with: neuronest water <id>"))
}

func runPlant(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	payload := models.ThoughtCreate{Mood: models.MoodNeutral}
	if plantMood != "" {
		mood, err := models.ParseMood(plantMood)
		if err != nil {
			return err
		}
		payload.Mood = mood
	}
	if len(args) > 0 {
		payload.Content = args[0]
	}
	if strings.TrimSpace(payload.Content) == "" {
		if err := a.prompt.Thought(ctx, &payload); err != nil {
			if errors.Is(err, ui.ErrHeadless) {
				return fmt.Errorf("thought content is required: %w", err)
			}
			return err
		}
	}

	g := views.NewGrowth(a.client)
	var created *models.Thought
	err = a.withRetry(ctx, "neuronest plant", func() error {
		return a.busy("Planting...", func() error {
			var err error
			created, err = g.Plant(ctx, payload.Content, payload.Mood)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("failed to plant thought: %w", err)
	}

	if created == nil {
		fmt.Fprintln(out, ui.Success("Planted"))
		fmt.Fprintln(out, ui.Muted("Run neuronest grow to see it in your growth space."))
		return nil
	}
	fmt.Fprintln(out, ui.SuccessCard(
		fmt.Sprintf("Planted thought #%d", created.ID),
		ui.ThoughtLine(*created),
	))
	return nil
}

func parseThoughtID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid thought id: %s", s)
	}
	return id, nil
}

func runWater(cmd *cobra.Command, args []string) error {
	id, err := parseThoughtID(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	g := views.NewGrowth(a.client)
	if err := a.busy("Loading thoughts...", func() error { return g.Load(ctx) }); err != nil {
		return fmt.Errorf("failed to load thoughts: %w", err)
	}

	return waterAndReport(ctx, a, id, g, func() *models.Thought {
		for _, t := range g.List() {
			if t.ID == id {
				return &t
			}
		}
		return nil
	})
}
