// Package config manages application configuration from various sources.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/patchview/patchview/internal/workspace"
)

// DiffConfig controls how diffs are computed.
type DiffConfig struct {
	ContextLines int `json:"contextLines,omitempty"`
}

// PathsConfig controls how file paths are displayed.
type PathsConfig struct {
	Display string `json:"display,omitempty"`
}

// OutputConfig controls the default output format.
type OutputConfig struct {
	Format string `json:"format,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	WorkingDir string       `json:"wd,omitempty"`
	Debug      bool         `json:"debug,omitempty"`
	Diff       DiffConfig   `json:"diff"`
	Paths      PathsConfig  `json:"paths"`
	Output     OutputConfig `json:"output"`
}

const (
	appName             = "patchview"
	defaultContextLines = 3
	defaultDisplay      = string(workspace.DisplayRelative)
	defaultFormat       = "text"
)

// Global configuration instance
var cfg *Config

// Load initializes the configuration from environment variables and config
// files. If debug is true, debug mode is enabled and log level is set to
// debug. It returns an error if configuration loading fails.
func Load(workingDir string, debug bool) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		WorkingDir: workingDir,
	}

	configureViper()
	setDefaults(debug)

	// Read global config
	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	// Load and merge local config
	mergeLocalConfig(workingDir)

	// Apply configuration to the struct
	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultLevel := slog.LevelInfo
	if cfg.Debug {
		defaultLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(defaultLevel)

	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(debug bool) {
	viper.SetDefault("diff.contextLines", defaultContextLines)
	viper.SetDefault("paths.display", defaultDisplay)
	viper.SetDefault("output.format", defaultFormat)
	viper.SetDefault("debug", debug)
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig loads and merges configuration from the local directory.
func mergeLocalConfig(workingDir string) {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.SetConfigType("json")
	local.AddConfigPath(workingDir)

	// Merge local config if it exists
	if err := local.ReadInConfig(); err == nil {
		viper.MergeConfigMap(local.AllSettings())
	}
}

// Validate checks if the configuration is valid.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	if cfg.Diff.ContextLines < 0 {
		return fmt.Errorf("diff.contextLines must not be negative, got %d", cfg.Diff.ContextLines)
	}
	if !workspace.DisplayMode(cfg.Paths.Display).IsValid() {
		return fmt.Errorf("unknown paths.display value: %s", cfg.Paths.Display)
	}
	return nil
}

// Get returns the current configuration.
// It's safe to call this function multiple times.
func Get() *Config {
	return cfg
}

// WorkingDirectory returns the current working directory from the
// configuration.
func WorkingDirectory() string {
	if cfg == nil {
		panic("config not loaded")
	}
	return cfg.WorkingDir
}
