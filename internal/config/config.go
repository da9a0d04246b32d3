// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hy4ri/timeline-tui/internal/timeline"
	"gopkg.in/yaml.v3"
)

const appName = "timeline-tui"

// Config represents the application configuration.
type Config struct {
	Timeline TimelineConfig `yaml:"timeline"`
	Sources  []SourceConfig `yaml:"sources"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`

	// Reload is an optional cron spec (e.g. "*/5 * * * *") for re-reading sources.
	Reload string `yaml:"reload,omitempty"`

	// ICSHorizonDays bounds recurrence expansion of calendar sources, counted
	// from today in both directions.
	ICSHorizonDays int `yaml:"ics_horizon_days"`
}

// TimelineConfig holds layout settings.
type TimelineConfig struct {
	Granularity   string  `yaml:"granularity"` // "day", "week" or "month"
	PaddingBefore int     `yaml:"padding_before"`
	PaddingAfter  int     `yaml:"padding_after"`
	AllowExtend   bool    `yaml:"allow_extend"`
	PixelsPerCell float64 `yaml:"pixels_per_cell"`
}

// SourceConfig names one item source. The kind is taken from the file
// extension unless set explicitly.
type SourceConfig struct {
	Path string `yaml:"path"`
	Kind string `yaml:"kind,omitempty"` // "yaml" or "ics"
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode     bool `yaml:"vim_mode"`
	NotifyToday bool `yaml:"notify_today"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `yaml:"path,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			Granularity:   "day",
			PaddingBefore: 7,
			PaddingAfter:  7,
			AllowExtend:   true,
			PixelsPerCell: 10,
		},
		UI: UIConfig{
			VimMode: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		ICSHorizonDays: 365,
	}
}

// Normalize fills in missing or invalid values so that partially filled
// configs still behave.
func (c *Config) Normalize() {
	if _, err := timeline.ParseGranularity(c.Timeline.Granularity); err != nil {
		c.Timeline.Granularity = "day"
	}
	if c.Timeline.PaddingBefore < 0 {
		c.Timeline.PaddingBefore = 0
	}
	if c.Timeline.PaddingAfter < 0 {
		c.Timeline.PaddingAfter = 0
	}
	if c.Timeline.PixelsPerCell <= 0 {
		c.Timeline.PixelsPerCell = 10
	}
	if c.ICSHorizonDays <= 0 {
		c.ICSHorizonDays = 365
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Sources {
		c.Sources[i].Kind = strings.ToLower(strings.TrimSpace(c.Sources[i].Kind))
	}
}

// Granularity returns the configured initial granularity.
func (c *Config) Granularity() timeline.Granularity {
	g, err := timeline.ParseGranularity(c.Timeline.Granularity)
	if err != nil {
		return timeline.Day
	}
	return g
}

// Options returns the timeline options described by the config.
func (c *Config) Options() timeline.Options {
	return timeline.Options{
		Granularity:   c.Granularity(),
		PaddingBefore: c.Timeline.PaddingBefore,
		PaddingAfter:  c.Timeline.PaddingAfter,
		AllowExtend:   c.Timeline.AllowExtend,
	}
}

// LogPath returns the log file path, defaulting to the config directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return ExpandPath(c.Log.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timeline.log"), nil
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(base, appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads the configuration from path.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Template is the commented config written by --init.
const Template = `# Timeline TUI Configuration
# Location: ~/.config/timeline-tui/config.yaml

timeline:
  # Initial granularity: day, week or month
  granularity: day
  # Extra days shown around the items (day granularity only)
  padding_before: 7
  padding_after: 7
  # Let dragged items grow the visible window instead of clamping them
  allow_extend: true
  # Layout pixels per terminal cell (a day column is 60px)
  pixels_per_cell: 10

# Item sources: .yaml/.yml item files or .ics calendars
sources:
  - path: ~/timeline.yaml

# Re-read sources on a cron schedule (optional)
# reload: "*/5 * * * *"

# Recurrence expansion horizon for .ics sources, in days around today
ics_horizon_days: 365

ui:
  vim_mode: true
  # Desktop notification for items starting today
  notify_today: false

log:
  # path: ~/.config/timeline-tui/timeline.log
  level: info
`
