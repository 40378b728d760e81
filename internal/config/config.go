package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pders01/neuronest/internal/models"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyAPIURL             = "api.url"
	KeyAPITimeout         = "api.timeout"
	KeySessionBackend     = "session.backend"
	KeySessionDir         = "session.dir"
	KeyInsightsPeriodDays = "insights.period_days"
	KeyJournalPeriod      = "journal.period"
	KeyMindspaceTick      = "mindspace.tick"
	KeyLogLevel           = "log.level"
	KeyNoInput            = "ui.no_input"
)

// Token store backends
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// EnvPrefix is prepended to every environment override, e.g. NEURONEST_API_URL
const EnvPrefix = "NEURONEST"

// Config is the typed view of the effective configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Insights  InsightsConfig  `mapstructure:"insights"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Mindspace MindspaceConfig `mapstructure:"mindspace"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
}

type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type InsightsConfig struct {
	PeriodDays int `mapstructure:"period_days"`
}

type JournalConfig struct {
	Period string `mapstructure:"period"`
}

type MindspaceConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type UIConfig struct {
	NoInput bool `mapstructure:"no_input"`
}

// Dir returns the config directory, $HOME/.config/neuronest
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "neuronest"), nil
}

// DefaultDataDir returns where the session token is kept by default
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "neuronest")
	}
	return filepath.Join(home, ".local", "share", "neuronest")
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		API:       APIConfig{URL: "http://localhost:8000", Timeout: 15 * time.Second},
		Session:   SessionConfig{Backend: BackendFile, Dir: DefaultDataDir()},
		Insights:  InsightsConfig{PeriodDays: models.DefaultInsightsPeriodDays},
		Journal:   JournalConfig{Period: models.DefaultJournalPeriod},
		Mindspace: MindspaceConfig{Tick: time.Second},
		Log:       LogConfig{Level: "warn"},
	}
}

// SetDefaults registers the built-in values with viper
func SetDefaults() {
	d := Default()
	viper.SetDefault(KeyAPIURL, d.API.URL)
	viper.SetDefault(KeyAPITimeout, d.API.Timeout.String())
	viper.SetDefault(KeySessionBackend, d.Session.Backend)
	viper.SetDefault(KeySessionDir, d.Session.Dir)
	viper.SetDefault(KeyInsightsPeriodDays, d.Insights.PeriodDays)
	viper.SetDefault(KeyJournalPeriod, d.Journal.Period)
	viper.SetDefault(KeyMindspaceTick, d.Mindspace.Tick.String())
	viper.SetDefault(KeyLogLevel, d.Log.Level)
	viper.SetDefault(KeyNoInput, d.UI.NoInput)
}

// BindEnv makes every key overridable from NEURONEST_* variables
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load decodes the effective configuration and validates it
func Load() (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		expandHomeHook(),
	))
	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandHomeHook turns a leading ~/ in string values into the home directory
func expandHomeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		s := data.(string)
		if !strings.HasPrefix(s, "~/") {
			return data, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return data, nil
		}
		return filepath.Join(home, s[2:]), nil
	}
}

// Validate rejects values the client cannot run with
func (c Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s: %q", KeyAPIURL, c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyAPITimeout)
	}
	switch c.Session.Backend {
	case BackendFile, BackendBadger:
	default:
		return fmt.Errorf("invalid %s: %q (expected %s or %s)", KeySessionBackend, c.Session.Backend, BackendFile, BackendBadger)
	}
	if c.Session.Dir == "" {
		return fmt.Errorf("invalid %s: must not be empty", KeySessionDir)
	}
	if c.Insights.PeriodDays <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyInsightsPeriodDays)
	}
	if c.Mindspace.Tick <= 0 {
		return fmt.Errorf("invalid %s: must be positive", KeyMindspaceTick)
	}
	return nil
}

// fileConfig is the on-disk shape, durations as strings
type fileConfig struct {
	API struct {
		URL     string `toml:"url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Session struct {
		Backend string `toml:"backend"`
		Dir     string `toml:"dir"`
	} `toml:"session"`
	Insights struct {
		PeriodDays int `toml:"period_days"`
	} `toml:"insights"`
	Journal struct {
		Period string `toml:"period"`
	} `toml:"journal"`
	Mindspace struct {
		Tick string `toml:"tick"`
	} `toml:"mindspace"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	UI struct {
		NoInput bool `toml:"no_input"`
	} `toml:"ui"`
}

// TOML renders c as a config file
func (c Config) TOML() ([]byte, error) {
	var f fileConfig
	f.API.URL = c.API.URL
	f.API.Timeout = c.API.Timeout.String()
	f.Session.Backend = c.Session.Backend
	f.Session.Dir = c.Session.Dir
	f.Insights.PeriodDays = c.Insights.PeriodDays
	f.Journal.Period = c.Journal.Period
	f.Mindspace.Tick = c.Mindspace.Tick.String()
	f.Log.Level = c.Log.Level
	f.UI.NoInput = c.UI.NoInput

	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// GetAPIURL returns the NeuroNest server base URL
func GetAPIURL() string {
	return viper.GetString(KeyAPIURL)
}

// GetAPITimeout returns the per-request timeout
func GetAPITimeout() time.Duration {
	return viper.GetDuration(KeyAPITimeout)
}

// GetInsightsPeriodDays returns the default insights window
func GetInsightsPeriodDays() int {
	return viper.GetInt(KeyInsightsPeriodDays)
}

// GetJournalPeriod returns the default journal period
func GetJournalPeriod() string {
	return viper.GetString(KeyJournalPeriod)
}

// GetMindspaceTick returns the breathing timer interval
func GetMindspaceTick() time.Duration {
	return viper.GetDuration(KeyMindspaceTick)
}

// NoInput reports whether prompts are disabled
func NoInput() bool {
	return viper.GetBool(KeyNoInput)
}
