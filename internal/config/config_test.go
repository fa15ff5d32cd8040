package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TALLY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Facts.BaseURL != "http://numbersapi.com" {
		t.Fatalf("facts base url default: %q", cfg.Facts.BaseURL)
	}
	if cfg.UI.TickInterval != time.Second {
		t.Fatalf("tick interval default: %s", cfg.UI.TickInterval)
	}
	if cfg.Database.Path == "" {
		t.Fatalf("database path default empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("TALLY_DATABASE_PATH", "/tmp/custom.db")
	t.Setenv("TALLY_UI_TICK_INTERVAL", "250ms")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/custom.db" {
		t.Fatalf("env override ignored: %q", cfg.Database.Path)
	}
	if cfg.UI.TickInterval != 250*time.Millisecond {
		t.Fatalf("tick interval override: %s", cfg.UI.TickInterval)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[ui]\naccent_color = \"#89b4fa\"\ntick_interval = \"2s\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TALLY_CONFIG", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.AccentColor != "#89b4fa" {
		t.Fatalf("accent color from file: %q", cfg.UI.AccentColor)
	}
	if cfg.UI.TickInterval != 2*time.Second {
		t.Fatalf("tick interval from file: %s", cfg.UI.TickInterval)
	}
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	t.Setenv("TALLY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("TALLY_UI_TICK_INTERVAL", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero tick interval")
	}
}
