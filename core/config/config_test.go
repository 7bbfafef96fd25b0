package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"locale", func(c *Config) { c.Output.Locale = "fr" }, "output.locale"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"rotation", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_size"},
		{"server addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %s, want %s", vErr.Field, tt.field)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Output.Locale = "zh"
	cfg.Journal.Enabled = true
	cfg.Journal.Path = "/tmp/j.db"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}
	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
	if p, _ := got.JournalPath(); p != "/tmp/j.db" {
		t.Errorf("JournalPath() = %s", p)
	}
}

func TestLoadFromFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("output:\n  format: json\n"), 0644)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Logging.Level != "info" || cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("logging:\n  level: loud\n"), 0644)
	if _, err := LoadFromFile(bad); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("LoadFromFile() error = %v", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("output: [\n"), 0644)
	if _, err := LoadFromFile(broken); err == nil {
		t.Error("LoadFromFile() should fail on malformed YAML")
	}

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFromFile() should fail on a missing file")
	}
}

func TestLoadDefault_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	p, err := cfg.JournalPath()
	if err != nil || filepath.Base(p) != "journal.db" || filepath.Base(filepath.Dir(p)) != appDir {
		t.Errorf("JournalPath() = %s, %v", p, err)
	}
}
