// Package config loads the tracker configuration from an optional YAML
// file. Every field has a default, so running without a config file works.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for the tracker configuration.
const (
	DefaultPort         = 8080
	DefaultHistoryPath  = "sugar_history.csv"
	DefaultChartWindow  = 7
	DefaultPreviewLimit = 10
)

// Config holds the full tracker configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Port is the port the dashboard and API listen on (default 8080).
	Port int `yaml:"port"`
}

// HistoryConfig holds the settings for the CSV history file and how much
// of it the dashboard shows.
type HistoryConfig struct {
	// Path is the location of the CSV history file (default
	// "sugar_history.csv", relative to the working directory).
	Path string `yaml:"path"`

	// ChartWindow is how many recent readings the trend chart plots
	// (default 7).
	ChartWindow int `yaml:"chart_window"`

	// PreviewLimit is how many recent readings the history table shows
	// (default 10).
	PreviewLimit int `yaml:"preview_limit"`
}

// Load reads and parses the config file at path. An empty path returns the
// defaults. Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tracker config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("tracker config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("tracker config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: DefaultPort,
		},
		History: HistoryConfig{
			Path:         DefaultHistoryPath,
			ChartWindow:  DefaultChartWindow,
			PreviewLimit: DefaultPreviewLimit,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range [1, 65535]", cfg.Server.Port)
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("history.path must not be empty")
	}
	if cfg.History.ChartWindow < 2 {
		return fmt.Errorf("history.chart_window %d must be at least 2", cfg.History.ChartWindow)
	}
	if cfg.History.PreviewLimit <= 0 {
		return fmt.Errorf("history.preview_limit %d must be positive", cfg.History.PreviewLimit)
	}
	return nil
}
