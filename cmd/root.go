package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pders01/neuronest/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	apiURL  string
	verbose bool
	noInput bool
)

// out and errOut are swapped in tests
var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "neuronest",
	Short: "A calm place to grow your thoughts",
	Long: `neuronest is the command line client for the NeuroNest wellness service:
  - plant thoughts and water them as they grow
  - look back on your garden and mood insights
  - generate a journal summary
  - find a mindfulness practice and breathe through it

Log in first with: neuronest login`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/neuronest/config.toml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "NeuroNest server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "Never prompt; fail when input is missing")

	_ = viper.BindPFlag(config.KeyAPIURL, rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyNoInput, rootCmd.PersistentFlags().Lookup("no-input"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := config.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	config.BindEnv()
	config.SetDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configPath is where config init writes and config show reads
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
