// Package config loads packager settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the packager's settings. Zero values are filled in by
// Defaults.
type Config struct {
	Site      string `yaml:"site"`
	OutputDir string `yaml:"output_dir"`

	Fetch struct {
		TimeoutSeconds     int   `yaml:"timeout_seconds"`
		DialTimeoutSeconds int   `yaml:"dial_timeout_seconds"`
		SizeCapMB          int64 `yaml:"size_cap_mb"`
	} `yaml:"fetch"`
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 15
	}
	if c.Fetch.DialTimeoutSeconds == 0 {
		c.Fetch.DialTimeoutSeconds = 5
	}
	if c.Fetch.SizeCapMB == 0 {
		c.Fetch.SizeCapMB = 5
	}
}

// FetchTimeout is the whole-request fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// DialTimeout is the connect timeout for fetches.
func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.Fetch.DialTimeoutSeconds) * time.Second
}

// SizeCap is the per-fetch body size cap in bytes.
func (c *Config) SizeCap() int64 {
	return c.Fetch.SizeCapMB * 1024 * 1024
}

// Load reads path into a Config. A missing file is not an error: the
// defaults apply. A file that exists but fails to parse is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Defaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Defaults()
	return cfg, nil
}
