package cmd

import (
	"fmt"

	"github.com/pders01/neuronest/internal/config"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var (
	insightsDays int
	insightsJSON bool
	insightsToon bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show mood statistics",
	Long: `Show how many thoughts you planted, how your moods were distributed
and whether you have been writing more or less lately.

Examples:
  neuronest insights
  neuronest insights --days 7
  neuronest insights --json`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)

	insightsCmd.Flags().IntVar(&insightsDays, "days", 0, "Period in days (default from config)")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "Output as JSON")
	insightsCmd.Flags().BoolVar(&insightsToon, "toon", false, "Output as Toon")
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	days := insightsDays
	if days <= 0 {
		days = config.GetInsightsPeriodDays()
	}
	r := views.NewInsights(a.client, days)
	err = a.withRetry(ctx, fmt.Sprintf("neuronest insights --days %d", days), func() error {
		return a.busy("Gathering insights...", func() error { return r.Load(ctx) })
	})
	if err != nil {
		return fmt.Errorf("failed to load insights: %w", err)
	}

	if r.Empty() {
		fmt.Fprintln(out, "No insights yet.")
		fmt.Fprintln(out, ui.Muted(`Plant a thought with: neuronest plant "..."`))
		return nil
	}

	if done, err := encodeOutput(r.Data(), insightsJSON, insightsToon); done {
		return err
	}

	fmt.Fprintln(out, ui.Card(fmt.Sprintf("Growth Insights (last %d days)", days), insightsBody(r.Data())))
	return nil
}
