// ABOUTME: Trainer configuration: server URL, auth token, data dir, device id.
// ABOUTME: JSON file in the XDG config dir with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"

	"github.com/harperreed/trainer/internal/storage"
)

// Config stores trainer tool configuration.
type Config struct {
	// Server is the base URL of the workout planner API.
	Server string `json:"server,omitempty" env:"TRAINER_SERVER"`

	// Token is the bearer token attached to every API request.
	Token string `json:"token,omitempty" env:"TRAINER_TOKEN"`

	// DataDir is the root directory for the local database.
	// Supports ~ expansion. Defaults to ~/.local/share/trainer.
	DataDir string `json:"data_dir,omitempty" env:"TRAINER_DATA_DIR"`

	// DeviceID identifies this device; generated on first save.
	DeviceID string `json:"device_id,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the local database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "trainer.db")
}

// IsConfigured reports whether a server has been set up.
func (c *Config) IsConfigured() bool {
	return c.Server != ""
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "trainer", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk, assigning a device id if missing.
func (c *Config) Save() error {
	if c.DeviceID == "" {
		c.DeviceID = uuid.NewString()
	}

	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
