package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldUnit
	settingsFieldWeight
	settingsFieldWeekStrip
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	return ti
}

func (a App) updateSettingsKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", " ":
		return a.settingsActivate()
	default:
		return a, nil, false
	}
	return a, nil, true
}

// settingsActivate changes the field under the cursor. Toggles apply at
// once; the default weight opens a text input.
func (a App) settingsActivate() (App, tea.Cmd, bool) {
	a.settings.saved = false
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldTheme:
		next := theme.Next(a.cfg.Appearance.Theme)
		a.cfg.Appearance.Theme = next.Name
		theme.SetActive(next.Name)
		a.saveSettings()
	case settingsFieldUnit:
		unit := a.prefs.Unit()
		return a, writeCmd("Unit switched", func() error {
			_, err := a.prefs.ToggleUnit()
			if err != nil {
				return fmt.Errorf("switching from %s: %w", unit, err)
			}
			return nil
		}), true
	case settingsFieldWeight:
		ti := newSettingsInput()
		ti.Placeholder = "20"
		ti.SetValue(cli.FormatDecimal(a.cfg.General.DefaultWeightKg))
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return a, ti.Cursor.BlinkCmd(), true
	case settingsFieldWeekStrip:
		a.cfg.TUI.ShowWeekStrip = !a.cfg.TUI.ShowWeekStrip
		a.saveSettings()
	}
	return a, nil, true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.settings.input.Value())
		if err := config.Set(&a.cfg, "general.default_weight_kg", val); err != nil {
			a.settings.saveErr = err
			return a, nil
		}
		a.settings.editing = false
		a.saveSettings()
		return a, nil
	case "esc":
		a.settings.editing = false
		a.settings.saveErr = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) saveSettings() {
	a.settings.saveErr = config.Save(a.cfg)
	a.settings.saved = a.settings.saveErr == nil
	if a.settings.saveErr != nil {
		a.log.Error("saving config", "error", a.settings.saveErr)
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.DoneBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Theme", a.cfg.Appearance.Theme},
		{"Weight unit", string(a.prefs.Unit())},
		{"Default weight", cli.FormatDecimal(a.cfg.General.DefaultWeightKg) + " kg"},
		{"Week strip", strconv.FormatBool(a.cfg.TUI.ShowWeekStrip)},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:      ") + valueStyle.Render(truncStr(config.GetDBPath(a.cfg), innerW-15)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(truncStr(config.ConfigPath(), innerW-15)) + "\n")
	infoBody.WriteString(labelStyle.Render("Days logged:   ") + valueStyle.Render(cli.FormatNumber(int64(a.logs.Len()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Presets:       ") + valueStyle.Render(strconv.Itoa(len(a.prefs.Presets()))))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
