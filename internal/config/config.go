package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"fsops/internal/logging"
	"fsops/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "fsops" // application name used for config directory

// ConfigPathEnv overrides the config file location.
const ConfigPathEnv = "FSOPS_CONFIG_PATH"

const currentVersion = "1.0"

// Config holds user configuration for fsops.
type Config struct {
	// DefaultPolicy is applied by mv and cp when --policy is not given.
	DefaultPolicy fileops.ConflictPolicy `yaml:"default_policy"`

	// CreateParents makes mv and cp create missing destination directories.
	CreateParents bool `yaml:"create_parents"`

	LogLevel string        `yaml:"log_level,omitempty"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Version  string        `yaml:"version"` // Track config version
}

// MetricsConfig controls the Prometheus endpoint served alongside the tool server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPolicy: fileops.FailOnConflict,
		LogLevel:      "warn",
		Metrics: MetricsConfig{
			Address: "127.0.0.1:9464",
		},
		Version: currentVersion,
	}
}

// ConfigPath returns the config file path, honouring FSOPS_CONFIG_PATH.
func ConfigPath() string {
	if override := os.Getenv(ConfigPathEnv); override != "" {
		logging.Debug("Using config path from environment", "path", override)
		return override
	}

	configPath := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// Load loads the config from the standard location. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads config from a specific path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("No config file, using defaults", "path", path)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF; treat it as defaults
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks field values that YAML decoding alone does not.
func (c *Config) Validate() error {
	if !c.DefaultPolicy.Valid() {
		return fmt.Errorf("default_policy: unknown conflict policy %d", int(c.DefaultPolicy))
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Address); err != nil {
			return fmt.Errorf("metrics.address: %w", err)
		}
	}
	return nil
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Version == "" {
		c.Version = currentVersion
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.Info("Configuration saved", "path", path)
	return nil
}

// ManagerOptions translates the config into fileops.Manager options.
func (c *Config) ManagerOptions() []fileops.Option {
	return []fileops.Option{
		fileops.WithDefaultPolicy(c.DefaultPolicy),
		fileops.WithCreateParents(c.CreateParents),
	}
}
