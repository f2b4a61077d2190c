package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "truelies-tui"

// Config holds application configuration.
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Grading GradingConfig `mapstructure:"grading"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

// SearchConfig tunes the search bar.
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// GradingConfig decides PASS/FAIL for sources that carry only a score.
type GradingConfig struct {
	PassThreshold float64 `mapstructure:"pass_threshold"`
}

// StatsConfig selects the rows statistics cover: "all" or "visible".
type StatsConfig struct {
	Scope string `mapstructure:"scope"`
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	JSONName string `mapstructure:"json_name"`
	Title    string `mapstructure:"title"`
}

// LogConfig holds logging settings. An empty File disables logging in the TUI.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load reads configuration from path (or TRUELIES_CONFIG, or DefaultPath)
// and the environment. Env var overrides use prefix TRUELIES_. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("search.debounce", 300*time.Millisecond)
	v.SetDefault("grading.pass_threshold", 0.7)
	v.SetDefault("stats.scope", "all")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.json_name", "validation_results.json")
	v.SetDefault("export.title", "Chatbot Validation Report")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")
	explicit := path != ""
	if !explicit {
		path = os.Getenv("TRUELIES_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("TRUELIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Debounce < 0 {
		errs = append(errs, fmt.Errorf("search.debounce must not be negative, got %s", c.Search.Debounce))
	}
	if c.Grading.PassThreshold < 0 || c.Grading.PassThreshold > 1 {
		errs = append(errs, fmt.Errorf("grading.pass_threshold must be within [0, 1], got %v", c.Grading.PassThreshold))
	}
	switch c.Stats.Scope {
	case "all", "visible":
	default:
		errs = append(errs, fmt.Errorf("stats.scope must be all or visible, got %q", c.Stats.Scope))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
