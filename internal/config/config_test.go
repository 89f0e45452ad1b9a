package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultWeightKg != 20 {
		t.Fatalf("DefaultWeightKg = %v, want 20", cfg.General.DefaultWeightKg)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Fatal("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.General.DefaultWeightKg = 42.5
	cfg.Appearance.Theme = "tokyo-night"
	cfg.TUI.ShowWeekStrip = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "liftlog", "config.toml"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "liftlog"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestGetDBPathPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(EnvDB, "")

	cfg := DefaultConfig()
	if got, want := GetDBPath(cfg), filepath.Join("/data", "liftlog", "liftlog.db"); got != want {
		t.Fatalf("GetDBPath = %q, want %q", got, want)
	}

	cfg.General.DBPath = "/cfg.db"
	if got := GetDBPath(cfg); got != "/cfg.db" {
		t.Fatalf("GetDBPath = %q, want /cfg.db", got)
	}

	t.Setenv(EnvDB, "/env.db")
	if got := GetDBPath(cfg); got != "/env.db" {
		t.Fatalf("GetDBPath = %q, want /env.db", got)
	}
}

func TestSetKeys(t *testing.T) {
	cfg := DefaultConfig()
	if err := Set(&cfg, "general.default_weight_kg", "25"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.General.DefaultWeightKg != 25 {
		t.Fatalf("DefaultWeightKg = %v, want 25", cfg.General.DefaultWeightKg)
	}
	if err := Set(&cfg, "general.default_weight_kg", "-1"); err == nil {
		t.Fatal("Set accepted a negative weight")
	}
	for _, v := range []string{"Inf", "NaN"} {
		if err := Set(&cfg, "general.default_weight_kg", v); err == nil {
			t.Fatalf("Set accepted weight %q", v)
		}
	}
	if cfg.General.DefaultWeightKg != 25 {
		t.Fatalf("DefaultWeightKg = %v after rejected sets, want 25", cfg.General.DefaultWeightKg)
	}
	if err := Set(&cfg, "tui.show_week_strip", "false"); err != nil || cfg.TUI.ShowWeekStrip {
		t.Fatalf("show_week_strip = %v, err %v", cfg.TUI.ShowWeekStrip, err)
	}
	if err := Set(&cfg, "nope", "x"); err == nil {
		t.Fatal("Set accepted unknown key")
	}
}
