// Package config holds all solohub configuration: storage backend selection,
// AI provider settings, the permission grant table override, and logging.
// Config lives in a YAML file; a handful of environment variables override
// the file so secrets stay out of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all solohub configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Storage backend selection
	Storage StorageConfig `yaml:"storage"`

	// AI provider configuration
	AI AIConfig `yaml:"ai"`

	// Permission grant table. Empty means the built-in defaults.
	Permissions PermissionsConfig `yaml:"permissions"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and locates the storage backends.
type StorageConfig struct {
	// Backend for entity collections: memory or badger.
	Backend string `yaml:"backend"`

	// SessionBackend for chat sessions: memory or sqlite.
	SessionBackend string `yaml:"session_backend"`

	// DataDir holds the badger directory and the sqlite file.
	DataDir string `yaml:"data_dir"`

	// ExpiryWindowDays is the resource "expiring soon" horizon.
	ExpiryWindowDays int `yaml:"expiry_window_days"`
}

// AIConfig configures the model provider.
type AIConfig struct {
	Provider      string  `yaml:"provider"` // gemini
	APIKey        string  `yaml:"api_key"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	ContextWindow int     `yaml:"context_window"` // trailing messages per turn
}

// PermissionsConfig overrides the role→action grant table. Keys are roles,
// values are action lists ("project:delete", ...).
type PermissionsConfig struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string          `yaml:"level"` // debug, info, warn, error
	Development bool            `yaml:"development"`
	Enabled     bool            `yaml:"enabled"`
	Categories  map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "solohub",
		Version: "0.3.0",

		Storage: StorageConfig{
			Backend:          "memory",
			SessionBackend:   "memory",
			DataDir:          "data",
			ExpiryWindowDays: 30,
		},

		AI: AIConfig{
			Provider:      "gemini",
			Model:         "gemini-2.0-flash",
			Temperature:   0.7,
			MaxTokens:     4096,
			ContextWindow: 20,
		},

		Logging: LoggingConfig{
			Level:   "info",
			Enabled: true,
		},
	}
}

// Load reads the config file, applies defaults for missing fields, then
// applies environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file for secrets and
// quick experiments.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("SOLOHUB_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("SOLOHUB_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("SOLOHUB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ExpiryWindow returns the resource expiry horizon as a duration.
func (c *Config) ExpiryWindow() time.Duration {
	if c.Storage.ExpiryWindowDays <= 0 {
		return 0
	}
	return time.Duration(c.Storage.ExpiryWindowDays) * 24 * time.Hour
}

// SessionDBPath is the sqlite file location under DataDir.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.Storage.DataDir, "sessions.db")
}

// BadgerDir is the badger directory under DataDir.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.Storage.DataDir, "badger")
}
