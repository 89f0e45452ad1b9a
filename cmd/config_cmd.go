package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/store"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value, e.g. appearance.theme tokyo-night",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.ConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:       %s\n", config.GetDBPath(cfg))
	if cfg.General.DBPath == "" {
		fmt.Println("                    (default location)")
	}
	fmt.Printf("    Default weight: %s kg\n", cli.FormatDecimal(cfg.General.DefaultWeightKg))
	fmt.Printf("    Log level:      %s\n", config.GetLogLevel(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Week strip: %v\n", cfg.TUI.ShowWeekStrip)
	fmt.Println()

	if err := printStorage(config.GetDBPath(cfg)); err != nil {
		return err
	}

	fmt.Println("  Run `liftlog setup` to reconfigure.")
	return nil
}

// printStorage lists the stored documents without creating a database
// that does not exist yet.
func printStorage(path string) error {
	if flagDB != "" {
		path = flagDB
	}
	fmt.Println("  [Storage]")
	if _, err := os.Stat(path); err != nil {
		fmt.Println("    (no database yet)")
		fmt.Println()
		return nil
	}

	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	keys, err := db.Keys()
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}
	for _, k := range keys {
		fmt.Printf("    %-16s %8s  %s\n", k.Key, cli.FormatNumber(int64(k.SizeBytes))+" B",
			k.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := strings.ToLower(args[0]), args[1]
	if key == "appearance.theme" && !theme.Valid(value) {
		return fmt.Errorf("unknown theme %q (have %s)", value, strings.Join(theme.Names(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Set(&cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  %s = %s\n", key, value)
	return nil
}
