// Package tui provides the interactive Bubble Tea dashboard for liftlog.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/bills"
	"github.com/theirongolddev/liftlog/internal/calendar"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

const (
	tabCalendar = iota
	tabDay
	tabBills
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// storeResultMsg reports the outcome of a write issued from a tea.Cmd.
type storeResultMsg struct {
	op  string
	err error
}

type tickMsg time.Time

// Deps is everything the dashboard reads and writes.
type Deps struct {
	Logs      *gymlog.Store
	Prefs     *gymlog.Prefs
	Bills     *bills.Book
	Config    config.Config
	Logger    *log.Logger
	NeedSetup bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	logs  *gymlog.Store
	prefs *gymlog.Prefs
	book  *bills.Book
	cfg   config.Config
	log   *log.Logger
	now   func() time.Time

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	today    time.Time
	selected time.Time // shared by the Calendar and Day tabs
	month    time.Time // first of the month shown in the Calendar tab

	// Per-tab state
	day      dayState
	bill     billsState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	flash    string
	flashErr bool
}

// NewApp creates a new TUI app model.
func NewApp(d Deps) App {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	logger := d.Logger
	if logger == nil {
		logger = log.Discard()
	}
	today := midnight(now())

	a := App{
		logs:      d.Logs,
		prefs:     d.Prefs,
		book:      d.Bills,
		cfg:       d.Config,
		log:       logger.WithComponent("tui"),
		now:       now,
		today:     today,
		selected:  today,
		month:     calendar.MonthStart(today),
		needSetup: d.NeedSetup,
		day:       newDayState(),
		bill:      newBillsState(),
	}
	if a.needSetup {
		a.setupVals = newSetupValues(a.cfg, a.prefs.Unit())
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion, tickCmd()}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// writeCmd runs fn off the update loop and reports the result.
func writeCmd(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return storeResultMsg{op: op, err: fn()}
	}
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash = msg
	a.flashErr = isErr
}

// selectDate moves the shared selection and keeps the calendar on its month.
func (a *App) selectDate(d time.Time) {
	a.selected = midnight(d)
	a.month = calendar.MonthStart(a.selected)
	a.day.cursor = 0
}

func (a App) selectedKey() string {
	return gymlog.DateKey(a.selected)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.day.form != nil {
			a.day.form = a.day.form.WithWidth(min(msg.Width, 70))
		}
		return a, nil

	case tickMsg:
		today := midnight(time.Time(msg))
		if !today.Equal(a.today) {
			a.today = today
		}
		return a, tickCmd()

	case storeResultMsg:
		if msg.err != nil {
			a.log.Error("write failed", "op", msg.op, "error", msg.err)
			a.setFlash(fmt.Sprintf("%s failed: %v", msg.op, msg.err), true)
		} else {
			a.setFlash(msg.op, false)
		}
		a.day.clampCursor(len(a.logs.Get(a.selectedKey()).Exercises))
		a.bill.clampCursor(len(a.visibleBills()))
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.day.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Modal inputs
		if a.day.form != nil {
			return a.updateDayForm(msg)
		}
		if a.day.noting {
			return a.updateNoteInput(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.activeTab == tabBills && a.bill.searching {
			return a.updateBillsSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.flash = ""

		var (
			cmd     tea.Cmd
			handled bool
		)
		switch a.activeTab {
		case tabCalendar:
			a, cmd, handled = a.updateCalendarKeys(key)
		case tabDay:
			a, cmd, handled = a.updateDayKeys(key)
		case tabBills:
			a, cmd, handled = a.updateBillsKeys(key)
		case tabSettings:
			a, cmd, handled = a.updateSettingsKeys(key)
		}
		if handled {
			return a, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whatever is modal.
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.day.form != nil:
		return a.updateDayForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabCalendar:
			a.selectDate(a.selected.AddDate(0, 0, -7))
		case tabDay:
			a.day.move(-1, len(a.logs.Get(a.selectedKey()).Exercises))
		case tabBills:
			a.bill.move(-1, len(a.visibleBills()))
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabCalendar:
			a.selectDate(a.selected.AddDate(0, 0, 7))
		case tabDay:
			a.day.move(1, len(a.logs.Get(a.selectedKey()).Exercises))
		case tabBills:
			a.bill.move(1, len(a.visibleBills()))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.viewSetup()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  liftlog needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Key).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"c d b s", "Jump to tab"},
			{"tab ⇧tab", "Next / Previous tab"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
		{"Calendar", []struct{ key, desc string }{
			{"h j k l", "Move selection (arrows work too)"},
			{"[ ]", "Previous / Next month"},
			{"t", "Jump to today"},
			{"space", "Toggle done"},
			{"enter", "Open day"},
		}},
		{"Day", []struct{ key, desc string }{
			{"space", "Toggle done"},
			{"1-9", "Toggle focus tag"},
			{"a p P", "Add / From preset / New preset"},
			{"e x", "Edit / Remove exercise"},
			{"+ - w", "Step field / Next field (sets, reps, weight)"},
			{"n u", "Note / Switch kg-lb"},
			{"h l", "Previous / Next day"},
		}},
		{"Bills", []struct{ key, desc string }{
			{"[ ]", "Previous / Next month"},
			{"/", "Search titles"},
			{"enter", "Cycle status"},
			{"D P S", "Done / Process / Skip"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.day.form != nil:
		return "[enter]next  [esc]cancel"
	case a.day.noting, a.settings.editing, a.bill.searching:
		return "[enter]save  [esc]cancel"
	}
	switch a.activeTab {
	case tabCalendar:
		return "[hjkl]move  [[ ]]month  [enter]open  [?]help  [q]uit"
	case tabDay:
		return "[a]dd  [p]reset  [space]done  [+/-]step  [?]help"
	case tabBills:
		return "[[ ]]month  [/]search  [enter]status  [?]help"
	default:
		return "[j/k]move  [enter]change  [?]help  [q]uit"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.flash, a.flashErr)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := max(h-headerH-statusH, minContentHeight)

	var content string
	switch a.activeTab {
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabDay:
		content = a.renderDayTab(cw)
	case tabBills:
		content = a.renderBillsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
