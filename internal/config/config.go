// Package config manages operator defaults for the certops CLI,
// stored in YAML at ~/.config/certops/config.yaml.
//
// Every setting has a built-in default, a missing config file is not
// an error, and command-line flags override whatever was loaded.
//
// Example config.yaml:
//
//	lead_days: 30
//	timezone: Asia/Tokyo
//	indent_width: 2
//	openssl_binary: openssl
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// LeadDays is how many days before expiry renewal should happen.
	LeadDays int `yaml:"lead_days"`

	// Timezone is the IANA name of the display timezone for renewal
	// instants. Input timestamps are always GMT; this only affects
	// how the computed instants are shown.
	Timezone string `yaml:"timezone"`

	// IndentWidth is the JSON indentation width for the primary output.
	IndentWidth int `yaml:"indent_width"`

	// OpenSSLBinary overrides the openssl executable name.
	OpenSSLBinary string `yaml:"openssl_binary"`
}

// configDir is the default config directory
const configDir = ".config/certops"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		LeadDays:      30,
		Timezone:      "Asia/Tokyo",
		IndentWidth:   2,
		OpenSSLBinary: "openssl",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. A missing file
// returns the defaults, not an error.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Location resolves the configured display timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
