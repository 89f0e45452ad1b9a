// Package cmd implements the liftlog CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/theirongolddev/liftlog/internal/bills"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/store"
)

var (
	flagDB      string
	flagDate    string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:               "liftlog",
	Short:             "Workout log and monthly bills in the terminal",
	Long:              "Track workouts day by day on a month calendar, and keep an eye on monthly bills.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDay,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default from config or $"+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVarP(&flagDate, "date", "D", "", "Day to operate on, YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

// setup loads .env and picks a color profile before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// app bundles everything a command needs. Close releases the database.
type app struct {
	cfg    config.Config
	db     *store.DB
	logs   *gymlog.Store
	prefs  *gymlog.Prefs
	bills  *bills.Book
	logger *log.Logger
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

// logLevel applies -v and -q over the configured level.
func logLevel(cfg config.Config) slog.Level {
	switch {
	case flagVerbose:
		return slog.LevelDebug
	case flagQuiet:
		return slog.LevelError
	}
	return log.ParseLevel(config.GetLogLevel(cfg))
}

func newLogger(cfg config.Config) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = logLevel(cfg)
	return log.New(lc)
}

// openApp is the shared data loading path used by all commands.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return openAppWith(cfg, newLogger(cfg))
}

func openAppWith(cfg config.Config, logger *log.Logger) (*app, error) {
	path := flagDB
	if path == "" {
		path = config.GetDBPath(cfg)
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	logger.Debug("opened database", "path", db.Path())

	return &app{
		cfg:    cfg,
		db:     db,
		logs:   gymlog.Load(db, logger),
		prefs:  gymlog.LoadPrefs(db, logger),
		bills:  bills.LoadBook(db, logger),
		logger: logger,
	}, nil
}

// targetDate resolves --date, defaulting to today.
func targetDate() (time.Time, error) {
	if flagDate == "" {
		return midnight(time.Now()), nil
	}
	return parseDay(flagDate)
}

func parseDay(s string) (time.Time, error) {
	switch s {
	case "today":
		return midnight(time.Now()), nil
	case "yesterday":
		return midnight(time.Now().AddDate(0, 0, -1)), nil
	}
	return gymlog.ParseDateKey(s)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
