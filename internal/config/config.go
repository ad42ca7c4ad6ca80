// Package config loads and saves fern.json project configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "fern.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultSnapshotDir is the default snapshot output directory.
	DefaultSnapshotDir = ".fern/snapshots"
)

// ErrNotFound is returned when no fern.json exists at the given path.
var ErrNotFound = errors.New("config: fern.json not found")

// Config represents the complete fern.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Snapshots contains snapshot store configuration.
	Snapshots SnapshotConfig `json:"snapshots,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// MetricsPath is the path the Prometheus handler is mounted on.
	// Empty disables the metrics endpoint.
	MetricsPath string `json:"metricsPath,omitempty"`
}

// SnapshotConfig contains snapshot store settings.
type SnapshotConfig struct {
	// Enabled controls whether the dev server persists snapshots.
	Enabled bool `json:"enabled,omitempty"`

	// Dir is the directory snapshots are written to.
	Dir string `json:"dir,omitempty"`

	// MaxAge is how long snapshots are kept before pruning (e.g. "24h").
	MaxAge string `json:"maxAge,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Dev: DevConfig{
			Port:        DefaultPort,
			Host:        DefaultHost,
			MetricsPath: "/metrics",
		},
		Snapshots: SnapshotConfig{
			Dir:    DefaultSnapshotDir,
			MaxAge: "24h",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for fern.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, filepath.Dir(path))
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Snapshots.Dir == "" {
		c.Snapshots.Dir = DefaultSnapshotDir
	}
	if c.Snapshots.MaxAge == "" {
		c.Snapshots.MaxAge = "24h"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Addr returns the host:port address the dev server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}

// SlogLevel maps the configured level name to a slog level string
// understood by slog.Level.UnmarshalText. Unknown names fall back to info.
func (c *Config) SlogLevel() string {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return c.Log.Level
	}
	return "info"
}
