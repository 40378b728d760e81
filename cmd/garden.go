package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/config"
	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var (
	gardenDays  int
	gardenWater bool
)

var gardenCmd = &cobra.Command{
	Use:   "garden",
	Short: "Walk through your garden of thoughts",
	Long: `Show every plant together with your mood insights.

Examples:
  neuronest garden
  neuronest garden --days 7
  neuronest garden show 3
  neuronest garden show 3 --water`,
	Args: cobra.NoArgs,
	RunE: runGarden,
}

var gardenShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one plant in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runGardenShow,
}

func init() {
	rootCmd.AddCommand(gardenCmd)
	gardenCmd.AddCommand(gardenShowCmd)

	gardenCmd.PersistentFlags().IntVar(&gardenDays, "days", 0, "Insights period in days (default from config)")
	gardenShowCmd.Flags().BoolVarP(&gardenWater, "water", "w", false, "Water the plant")
}

func loadGarden(ctx context.Context, a *app) (*views.Garden, error) {
	days := gardenDays
	if days <= 0 {
		days = config.GetInsightsPeriodDays()
	}
	g := views.NewGarden(a.client, a.client, days)
	err := a.busy("Loading garden...", func() error { return g.Load(ctx) })
	if err != nil && g.Thoughts.Err() != nil {
		return nil, fmt.Errorf("failed to load garden: %w", err)
	}
	if err != nil {
		// plants loaded, only insights failed
		a.logger.Debugf("insights unavailable: %v", err)
	}
	return g, nil
}

func runGarden(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	var g *views.Garden
	err = a.withRetry(ctx, "neuronest garden", func() error {
		var err error
		g, err = loadGarden(ctx, a)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Title("Your Garden"))
	fmt.Fprintln(out)
	if g.Insights.Err() != nil {
		fmt.Fprintln(out, ui.ErrorBox("Insights unavailable: "+g.Insights.ErrMessage()))
	} else if ins := g.Insights.Data(); ins != nil {
		fmt.Fprintln(out, ui.Card("Growth Insights", insightsBody(ins)))
	}
	fmt.Fprintln(out)
	printThoughts(g.List(), g.Thoughts.Empty())
	return nil
}

func runGardenShow(cmd *cobra.Command, args []string) error {
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

	g, err := loadGarden(ctx, a)
	if err != nil {
		return err
	}
	if err := g.Select(id); err != nil {
		return fmt.Errorf("thought #%d: %w", id, err)
	}

	if gardenWater {
		if err := waterAndReport(ctx, a, id, g, g.Selected); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, ui.ThoughtDetail(*g.Selected()))
	return nil
}

// wateringPage is a page that can water the thoughts it shows
type wateringPage interface {
	Water(ctx context.Context, id int64) error
	RetryWater(ctx context.Context, id int64) error
	WaterError(id int64) string
}

// waterAndReport waters id, offering a retry bound to the same id on failure.
// A failure is shown next to the thought it concerns.
func waterAndReport(ctx context.Context, a *app, id int64, page wateringPage, current func() *models.Thought) error {
	t := current()
	if t == nil {
		return fmt.Errorf("thought #%d: %w", id, views.ErrThoughtNotFound)
	}
	if !t.CanWater() {
		fmt.Fprintf(out, "%s Thought #%d is already fully grown.\n", ui.StageGlyph(t.GrowthStage), id)
		return nil
	}

	attempt := page.Water
	err := a.retryReporting(ctx, fmt.Sprintf("neuronest water %d", id), func() error {
		err := attempt(ctx, id)
		attempt = page.RetryWater
		return err
	}, func(err error) string {
		msg := page.WaterError(id)
		if msg == "" {
			msg = api.Message(err)
		}
		if cur := current(); cur != nil {
			return ui.ThoughtError(*cur, msg)
		}
		return ui.ErrorBox(msg)
	})
	if errors.Is(err, models.ErrFullyGrown) {
		fmt.Fprintf(out, "Thought #%d is already fully grown.\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to water thought #%d: %w", id, err)
	}

	if t = current(); t != nil {
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Watered thought #%d, now %s %s", id, ui.StageGlyph(t.GrowthStage), models.StageName(t.GrowthStage))))
	}
	return nil
}

func insightsBody(ins *models.GrowthInsights) string {
	lines := []string{
		fmt.Sprintf("Total thoughts: %d", ins.TotalThoughts),
		fmt.Sprintf("Trend:          %s", ins.RecentGrowthTrend),
	}
	if len(ins.MoodDistribution) > 0 {
		lines = append(lines, "", "Mood distribution:")
		moods := make([]string, 0, len(ins.MoodDistribution))
		for m := range ins.MoodDistribution {
			moods = append(moods, m)
		}
		sort.Strings(moods)
		for _, m := range moods {
			count := ins.MoodDistribution[m]
			pct := 0.0
			if ins.TotalThoughts > 0 {
				pct = float64(count) / float64(ins.TotalThoughts) * 100
			}
			lines = append(lines, fmt.Sprintf("  %-10s %3d  (%.1f%%)", m, count, pct))
		}
	}
	return strings.Join(lines, "\n")
}

// encodeOutput prints v as JSON or Toon when one of the flags is set.
// It reports whether anything was printed.
func encodeOutput(v any, asJSON, asToon bool) (bool, error) {
	if asJSON {
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return true, nil
	}
	if asToon {
		output, err := gotoon.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(out, output)
		return true, nil
	}
	return false, nil
}
