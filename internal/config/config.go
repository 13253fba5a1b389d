// Package config handles TOML-based configuration loading and validation.
// The file is parsed as data only; nothing in it is executed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Tenakskd/ytserver-v2/internal/httputil"
)

// Config holds all application configuration.
type Config struct {
	Listen   string `toml:"listen"`
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
	LogJSON  bool   `toml:"log_json"`
	S1       S1     `toml:"s1"`
	S2       S2     `toml:"s2"`
}

// S1 configures the mirror that pairs a watch page with a metadata API.
type S1 struct {
	WatchURL string `toml:"watch_url"`
	APIURL   string `toml:"api_url"`
	Variant  string `toml:"variant"`
}

// S2 configures the mirror that is scraped from its watch page alone.
type S2 struct {
	WatchURL string `toml:"watch_url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:   ":3000",
		Debug:    false,
		LogLevel: "info",
		LogJSON:  false,
		S1: S1{
			WatchURL: "https://inv.nadeko.net/watch",
			APIURL:   "https://siawaseok.duckdns.org/api/video2",
			Variant:  "page",
		},
		S2: S2{
			WatchURL: "https://invidious.f5.si/watch",
		},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ytserver"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ytserver"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("unsupported log level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	urls := map[string]string{
		"s1.watch_url": c.S1.WatchURL,
		"s1.api_url":   c.S1.APIURL,
		"s2.watch_url": c.S2.WatchURL,
	}
	for key, u := range urls {
		if u == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		if err := httputil.ValidateURL(u); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	validVariants := map[string]bool{"": true, "page": true, "api": true}
	if !validVariants[strings.ToLower(c.S1.Variant)] {
		return fmt.Errorf("unsupported s1 variant %q (valid: page, api)", c.S1.Variant)
	}

	return nil
}
