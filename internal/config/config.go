// Package config loads application configuration with layered precedence:
// built-in defaults, then the user config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dori/todomaster/internal/store"
)

const (
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/todomaster"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// RemoteConfig points at the hosted document store used for sync
type RemoteConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

// CalendarConfig controls the calendar write-through
type CalendarConfig struct {
	Enabled         *bool  `yaml:"enabled"`
	CalendarName    string `yaml:"calendar_name"`
	CredentialsFile string `yaml:"credentials_file"`
}

// IsEnabled reports whether the write-through was explicitly turned on
func (c CalendarConfig) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// Config holds application configuration. The bool fields are pointers so
// an absent key is distinguishable from an explicit false during Merge.
type Config struct {
	DataDir       string         `yaml:"data_dir"`
	DBPath        string         `yaml:"db_path"`
	Notifications *bool          `yaml:"notifications"`
	Remote        RemoteConfig   `yaml:"remote"`
	Calendar      CalendarConfig `yaml:"calendar"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	notifications := true
	return &Config{
		DataDir:       store.DefaultDataDir(),
		DBPath:        store.DefaultDBPath(),
		Notifications: &notifications,
		Calendar: CalendarConfig{
			CalendarName: "TodoMaster",
		},
	}
}

// NotificationsEnabled reports whether desktop notifications are on. An
// unset field counts as on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// SyncEnabled reports whether a remote endpoint is configured
func (c *Config) SyncEnabled() bool {
	return c.Remote.Endpoint != ""
}

// Merge overlays non-zero fields of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.Remote.Endpoint != "" {
		c.Remote.Endpoint = other.Remote.Endpoint
	}
	if other.Remote.Token != "" {
		c.Remote.Token = other.Remote.Token
	}
	if other.Calendar.CalendarName != "" {
		c.Calendar.CalendarName = other.Calendar.CalendarName
	}
	if other.Calendar.CredentialsFile != "" {
		c.Calendar.CredentialsFile = other.Calendar.CredentialsFile
	}
	if other.Calendar.Enabled != nil {
		c.Calendar.Enabled = other.Calendar.Enabled
	}
	if other.Notifications != nil {
		c.Notifications = other.Notifications
	}
}

// Validate checks the final configuration
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Remote.Endpoint == "" && c.Remote.Token != "" {
		return fmt.Errorf("remote.token is set but remote.endpoint is empty")
	}
	return nil
}

// LoadFromFile reads a config file. A missing file returns os.ErrNotExist.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &c, nil
}

// UserConfigPath returns where the user-level config file lives
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
