// Package config loads and persists the daemon's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config holds all daemon configuration.
type Config struct {
	// DeviceID identifies this installation; generated on first run.
	DeviceID string `yaml:"device_id"`

	Log     LogConfig     `yaml:"log"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// LogConfig holds logging-related configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// MonitorConfig holds clipboard monitoring options.
type MonitorConfig struct {
	// PollIntervalMS is the pause between change checks, in milliseconds.
	PollIntervalMS int64    `yaml:"poll_interval_ms"`
	MaxBytes       int64    `yaml:"max_bytes"`
	MaxImageBytes  int64    `yaml:"max_image_bytes"`
	CustomFormats  []string `yaml:"custom_formats"`
	StreamBuffer   int      `yaml:"stream_buffer"`
}

// PollInterval returns the poll interval as a duration.
func (m MonitorConfig) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalMS) * time.Millisecond
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		DeviceID: uuid.NewString(),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Monitor: MonitorConfig{
			PollIntervalMS: 200,
			StreamBuffer:   32,
		},
	}
}

// Dir returns the platform-specific configuration directory, overridable
// through CLIPSTREAM_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("CLIPSTREAM_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(configDir, "Clipstream"), nil
	case "darwin":
		return filepath.Join(configDir, "com.pasteworks.clipstream"), nil
	default:
		return filepath.Join(configDir, "clipstream"), nil
	}
}

// Load reads the active configuration, creating it with defaults on first
// run so the generated device id stays stable across restarts.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if saveErr := cfg.Save(path); saveErr != nil {
			return nil, fmt.Errorf("failed to write initial config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = uuid.NewString()
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
