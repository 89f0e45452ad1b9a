package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// setupValues backs the first-run form. It lives on the heap so the form
// keeps writing to the same fields as the App is copied.
type setupValues struct {
	Unit   string
	Theme  string
	Weight string
}

func newSetupValues(cfg config.Config, unit model.Unit) *setupValues {
	th := cfg.Appearance.Theme
	if !theme.Valid(th) {
		th = theme.All[0].Name
	}
	return &setupValues{
		Unit:   string(unit),
		Theme:  th,
		Weight: cli.FormatDecimal(cfg.General.DefaultWeightKg),
	}
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to liftlog").
				Description("A few choices before the first workout. Run `liftlog setup` anytime to change them."),
			huh.NewSelect[string]().
				Title("Weight unit").
				Options(huh.NewOptions(string(model.UnitKg), string(model.UnitLb))...).
				Value(&v.Unit),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
			huh.NewInput().
				Title("Default starting weight (kg)").
				Description("Pre-filled for exercises with no history.").
				Value(&v.Weight).
				Validate(validateWeight),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

// applySetup writes the form choices into cfg and prefs.
func applySetup(v *setupValues, cfg *config.Config, prefs *gymlog.Prefs) error {
	if s := strings.TrimSpace(v.Weight); s != "" {
		if validateWeight(s) != nil {
			return fmt.Errorf("invalid default weight %q", v.Weight)
		}
		cfg.General.DefaultWeightKg, _ = strconv.ParseFloat(s, 64)
	}
	unit, err := gymlog.ParseUnit(v.Unit)
	if err != nil {
		return err
	}
	cfg.Appearance.Theme = v.Theme
	theme.SetActive(v.Theme)

	if err := prefs.SetUnit(unit); err != nil {
		return err
	}
	return config.Save(*cfg)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.setupForm = nil
		a.needSetup = false
		a.setFlash("Setup skipped, defaults in use", false)
		return a, nil
	}

	m, cmd := a.setupForm.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := applySetup(a.setupVals, &a.cfg, a.prefs); err != nil {
			a.log.Error("saving setup", "error", err)
			a.setFlash(fmt.Sprintf("Setup not saved: %v", err), true)
		} else {
			a.setFlash("Saved to "+config.ConfigPath(), false)
		}
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

func (a App) viewSetup() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Width(min(a.width-4, 70)).
		Render(a.setupForm.View())

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("enter next  esc skip")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, card, hint))
}

// RunSetup runs the setup form outside the dashboard and saves the result.
// accessible switches huh to plain line prompts for non-terminal input.
func RunSetup(cfg *config.Config, prefs *gymlog.Prefs, accessible bool) error {
	v := newSetupValues(*cfg, prefs.Unit())
	if err := newSetupForm(v).WithAccessible(accessible).Run(); err != nil {
		return err
	}
	return applySetup(v, cfg, prefs)
}
