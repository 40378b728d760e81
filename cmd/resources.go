package cmd

import (
	"fmt"
	"strings"

	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show support resources and crisis lines",
	Args:  cobra.NoArgs,
	RunE:  runResources,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	r := views.Resources()

	lines := make([]string, 0, len(r.CrisisLines))
	for _, c := range r.CrisisLines {
		lines = append(lines, fmt.Sprintf("%s: %s", c.Name, c.Contact))
	}
	fmt.Fprintln(out, ui.WarningBox("In a crisis? Get immediate help", r.CrisisNote+"\n\n"+strings.Join(lines, "\n")))
	fmt.Fprintln(out)

	fmt.Fprintln(out, ui.Title("Articles & Guides"))
	for _, article := range r.Articles {
		fmt.Fprintf(out, "  - %s\n", article)
	}
	return nil
}
