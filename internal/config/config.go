// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the API token goes to the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tql/cli/internal/xdg"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvBaseURL    = "TQL_BASE_URL"
	EnvSolutionID = "TQL_SOLUTION_ID"
	EnvToken      = "TQL_TOKEN"
	EnvLogLevel   = "TQL_LOG_LEVEL"
	EnvLogFile    = "TQL_LOG_FILE"
)

// Defaults used when neither the config file nor the environment says otherwise.
const (
	DefaultBaseURL    = "https://api.trickest.io"
	DefaultAuthScheme = "Token"
	DefaultTimeout    = 60 * time.Second
	DefaultLimit      = 50
	DefaultLogLevel   = "info"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	SolutionID   string        `yaml:"solution_id"`
	AuthScheme   string        `yaml:"auth_scheme"`
	Timeout      time.Duration `yaml:"timeout"`
	DefaultLimit int           `yaml:"default_limit"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		AuthScheme:   DefaultAuthScheme,
		Timeout:      DefaultTimeout,
		DefaultLimit: DefaultLimit,
		LogLevel:     DefaultLogLevel,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from path. Settings absent from the file keep
// their default values.
func LoadFrom(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	c.fillDefaults()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to path with 0600 permissions.
func SaveTo(path string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, b, 0o600)
}

// ApplyEnv overrides settings from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvSolutionID)); v != "" {
		c.SolutionID = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
}

// Validate reports settings the dataset service cannot work without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL is not configured")
	}
	if strings.TrimSpace(c.SolutionID) == "" {
		return fmt.Errorf("solution id is not configured; pass --solution or set %s", EnvSolutionID)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.AuthScheme == "" {
		c.AuthScheme = d.AuthScheme
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.DefaultLimit == 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}
