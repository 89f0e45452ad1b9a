package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvDB       = "LIFTLOG_DB"
	EnvLogLevel = "LIFTLOG_LOG_LEVEL"
)

// Config holds all liftlog configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath          string  `toml:"db_path,omitempty"`
	DefaultWeightKg float64 `toml:"default_weight_kg"`
	LogLevel        string  `toml:"log_level"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard layout settings.
type TUIConfig struct {
	ShowWeekStrip bool `toml:"show_week_strip"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultWeightKg: 20,
			LogLevel:        "warn",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			ShowWeekStrip: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "liftlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "liftlog")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database and log file.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "liftlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "liftlog")
}

// DefaultDBPath is used when neither config, env, nor flag names a database.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "liftlog.db")
}

// LogFilePath is where the TUI writes its log.
func LogFilePath() string {
	return filepath.Join(DataDir(), "liftlog.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.DefaultWeightKg < 0 {
		cfg.General.DefaultWeightKg = 0
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetDBPath returns the database path from env var, config, or the default, in that order.
func GetDBPath(cfg Config) string {
	if p := strings.TrimSpace(os.Getenv(EnvDB)); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return DefaultDBPath()
}

// GetLogLevel returns the log level from env var or config, in that order.
func GetLogLevel(cfg Config) string {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		return lvl
	}
	return cfg.General.LogLevel
}

// Set assigns a dotted key such as "general.default_weight_kg".
func Set(cfg *Config, key, value string) error {
	switch key {
	case "general.db_path":
		cfg.General.DBPath = value
	case "general.default_weight_kg":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("default_weight_kg must be a non-negative number, got %q", value)
		}
		cfg.General.DefaultWeightKg = v
	case "general.log_level":
		cfg.General.LogLevel = value
	case "appearance.theme":
		cfg.Appearance.Theme = value
	case "tui.show_week_strip":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show_week_strip must be true or false, got %q", value)
		}
		cfg.TUI.ShowWeekStrip = v
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
