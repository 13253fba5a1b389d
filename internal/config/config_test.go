package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Listen != ":3000" {
		t.Errorf("default listen = %q, want :3000", cfg.Listen)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.LogLevel)
	}
	if cfg.S1.Variant != "page" {
		t.Errorf("default s1 variant = %q, want page", cfg.S1.Variant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty listen", func(c *Config) { c.Listen = " " }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"valid debug level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"empty s1 watch", func(c *Config) { c.S1.WatchURL = "" }, true},
		{"ftp s1 api", func(c *Config) { c.S1.APIURL = "ftp://example.com/api" }, true},
		{"no host s2", func(c *Config) { c.S2.WatchURL = "https://" }, true},
		{"http allowed", func(c *Config) { c.S2.WatchURL = "http://127.0.0.1:8080/watch" }, false},
		{"api variant", func(c *Config) { c.S1.Variant = "api" }, false},
		{"empty variant", func(c *Config) { c.S1.Variant = "" }, false},
		{"unknown variant", func(c *Config) { c.S1.Variant = "merged" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	content := `
listen = "127.0.0.1:9000"
log_level = "debug"
log_json = true

[s1]
watch_url = "https://inv.example.com/watch"
api_url = "https://api.example.com/video"
variant = "api"

[s2]
watch_url = "https://inv2.example.com/watch"
`
	dir := filepath.Join(tmpDir, "ytserver")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Listen != "127.0.0.1:9000" {
		t.Errorf("listen = %q, want 127.0.0.1:9000", cfg.Listen)
	}
	if cfg.LogLevel != "debug" || !cfg.LogJSON {
		t.Errorf("logging = %q/%v, want debug/true", cfg.LogLevel, cfg.LogJSON)
	}
	if cfg.S1.WatchURL != "https://inv.example.com/watch" {
		t.Errorf("s1.watch_url = %q", cfg.S1.WatchURL)
	}
	if cfg.S1.APIURL != "https://api.example.com/video" {
		t.Errorf("s1.api_url = %q", cfg.S1.APIURL)
	}
	if cfg.S1.Variant != "api" {
		t.Errorf("s1.variant = %q, want api", cfg.S1.Variant)
	}
	if cfg.S2.WatchURL != "https://inv2.example.com/watch" {
		t.Errorf("s2.watch_url = %q", cfg.S2.WatchURL)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("debug = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.S2.WatchURL != Default().S2.WatchURL {
		t.Errorf("s2.watch_url = %q, want default", cfg.S2.WatchURL)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"syntax error", "listen = ", "parsing config"},
		{"unknown key", "listen = \":1\"\nplayer = \"mpv\"\n", "unknown key"},
		{"invalid value", "[s1]\nvariant = \"both\"\n", "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Listen != ":3000" {
		t.Errorf("missing file should return defaults, got listen = %q", cfg.Listen)
	}
}
