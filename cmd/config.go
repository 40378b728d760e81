package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/neuronest/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the neuronest configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Create a config file with every setting at its default value.

The file is written to $HOME/.config/neuronest/config.toml unless
--config is given. Settings can also be overridden with NEURONEST_*
environment variables, e.g. NEURONEST_API_URL.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		fmt.Fprintf(out, "Config already exists: %s\n", path)
		fmt.Fprintln(out, "  Use --force to overwrite it")
		return nil
	}

	data, err := config.Default().TOML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "✓ Created default config: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	data, err := cfg.TOML()
	if err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# %s\n", used)
	}
	fmt.Fprint(out, string(data))
	return nil
}
