package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jobtrail/jobtrail/internal/thread"
)

// FollowupConfig controls when follow-up suggestions are raised.
type FollowupConfig struct {
	// AppliedAfterDays is the quiet period after which an applied
	// conversation earns a follow-up suggestion.
	AppliedAfterDays int `json:"applied_after_days"`

	// InterviewAfterDays is the quiet period for interview conversations.
	InterviewAfterDays int `json:"interview_after_days"`

	// MaxSuggestions caps how many suggestions are surfaced at once.
	MaxSuggestions int `json:"max_suggestions"`
}

// NotificationConfig controls the status notification center.
type NotificationConfig struct {
	// QueueSize bounds the pending message queue.
	QueueSize int `json:"queue_size"`

	// DisplayMs is how long each message stays visible.
	DisplayMs int `json:"display_ms"`
}

// Config holds all configuration for jobtrail
type Config struct {
	// Database is the SQLite file holding imported email records
	Database string `json:"database"`

	// Snapshot is the default backend snapshot file to import
	Snapshot string `json:"snapshot"`

	// Grouping holds the thread-grouper heuristic lists; empty lists fall
	// back to the built-in defaults
	Grouping thread.Rules `json:"grouping"`

	// Followup settings
	Followup FollowupConfig `json:"followup"`

	// Notifications settings
	Notifications NotificationConfig `json:"notifications"`

	// Theme is the name of the YAML theme to load
	Theme string `json:"theme"`

	// Logging
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DefaultDatabasePath(),
		Grouping: thread.DefaultRules(),
		Followup: FollowupConfig{
			AppliedAfterDays:   7,
			InterviewAfterDays: 5,
			MaxSuggestions:     10,
		},
		Notifications: NotificationConfig{
			QueueSize: 32,
			DisplayMs: 4000,
		},
		Theme: "default",
	}
}

// LoadConfig loads configuration from a JSON file, merged over defaults. A
// missing file is not an error; a malformed one is.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// NotificationDisplay returns the configured display duration per message
func (c *Config) NotificationDisplay() time.Duration {
	if c.Notifications.DisplayMs <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.Notifications.DisplayMs) * time.Millisecond
}

// DefaultConfigPath returns the default configuration file path, honoring
// the JOBTRAIL_CONFIG environment variable
func DefaultConfigPath() string {
	if env := os.Getenv("JOBTRAIL_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jobtrail", "config.json")
}

// DefaultDatabasePath returns the default SQLite database path
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jobtrail", "jobtrail.db")
}

// DefaultThemesDir returns the directory searched for YAML themes
func DefaultThemesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jobtrail", "themes")
}

// DefaultLogDir returns the default log directory path
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jobtrail")
}
