package cmd

import (
	"fmt"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server connection and session",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(out, "Server:   %s\n", a.client.BaseURL())
	pingErr := a.client.Ping(ctx)
	if pingErr != nil {
		fmt.Fprintf(out, "          %s\n", ui.ErrorBox(api.Message(pingErr)))
	} else {
		fmt.Fprintln(out, "          "+ui.Success("reachable"))
	}

	if user := a.session.User(); a.session.IsAuthenticated() && user != nil {
		fmt.Fprintf(out, "Session:  logged in as %s\n", user.Username)
	} else {
		fmt.Fprintln(out, "Session:  not logged in")
	}
	fmt.Fprintf(out, "Storage:  %s (%s)\n", a.cfg.Session.Backend, a.cfg.Session.Dir)

	if pingErr != nil {
		return fmt.Errorf("server unreachable: %w", pingErr)
	}
	return nil
}
