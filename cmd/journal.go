package cmd

import (
	"fmt"
	"strings"

	"github.com/pders01/neuronest/internal/config"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var (
	journalPeriod string
	journalJSON   bool
	journalToon   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Generate a summary of your recent thoughts",
	Long: `Ask NeuroNest for a reflective summary of a period, with an insight,
a recommendation and highlights.

Examples:
  neuronest journal
  neuronest journal --period "past month"
  neuronest journal --toon`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().StringVar(&journalPeriod, "period", "", `Period to summarize (default from config, "past week")`)
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "Output as JSON")
	journalCmd.Flags().BoolVar(&journalToon, "toon", false, "Output as Toon")
}

func runJournal(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	period := strings.TrimSpace(journalPeriod)
	if period == "" {
		period = config.GetJournalPeriod()
	}
	j := views.NewJournal(a.client, period)
	err = a.withRetry(ctx, fmt.Sprintf("neuronest journal --period %q", j.Period), func() error {
		return a.busy("Writing your journal summary...", func() error { return j.Generate(ctx) })
	})
	if err != nil {
		return fmt.Errorf("failed to generate journal: %w", err)
	}

	if done, err := encodeOutput(j.Summary.Data(), journalJSON, journalToon); done {
		return err
	}

	rendered, err := ui.RenderMarkdown(a.headless, ui.JournalMarkdown(j.Period, j.Summary.Data()), 80)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
