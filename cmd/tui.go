package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/tui"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns stderr, so the dashboard logs to a file.
	lc := log.DefaultConfig()
	lc.Level = logLevel(cfg)
	lc.Component = "liftlog-tui"
	f, err := log.OpenFile(config.LogFilePath())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	lc.Output = f
	logger := log.New(lc)

	a, err := openAppWith(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	app := tui.NewApp(tui.Deps{
		Logs:      a.logs,
		Prefs:     a.prefs,
		Bills:     a.bills,
		Config:    cfg,
		Logger:    logger,
		NeedSetup: !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
