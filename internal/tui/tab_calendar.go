package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/calendar"
	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

func (a App) updateCalendarKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "h", "left":
		a.selectDate(a.selected.AddDate(0, 0, -1))
	case "l", "right":
		a.selectDate(a.selected.AddDate(0, 0, 1))
	case "k", "up":
		a.selectDate(a.selected.AddDate(0, 0, -7))
	case "j", "down":
		a.selectDate(a.selected.AddDate(0, 0, 7))
	case "[":
		a.shiftMonth(-1)
	case "]":
		a.shiftMonth(1)
	case "t":
		a.selectDate(a.today)
	case "enter":
		a.activeTab = tabDay
	case " ":
		return a, a.toggleDoneCmd(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// shiftMonth moves the view n months, keeping the selected day of month
// where the target month has it.
func (a *App) shiftMonth(n int) {
	target := calendar.AddMonths(a.month, n)
	day := min(a.selected.Day(), calendar.DaysIn(target))
	a.selectDate(target.AddDate(0, 0, day-1))
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	cells := calendar.Build(a.month, a.logs)

	gridW := cw
	sideW := 0
	if cw >= 110 {
		sideW = 34
		gridW = cw - sideW
	}

	grid := components.ContentCard(a.month.Format("January 2006"), a.renderGrid(cells, gridW), gridW)

	var b strings.Builder
	if sideW > 0 {
		b.WriteString(components.CardRow([]string{grid, a.renderDaySummaryCard(sideW)}))
	} else {
		b.WriteString(grid)
		b.WriteString("\n")
		b.WriteString(a.renderDaySummaryCard(cw))
	}

	if a.cfg.TUI.ShowWeekStrip {
		b.WriteString("\n")
		b.WriteString(a.renderWeekStrip(cw))
	}

	monthLogs := a.logs.MonthLogs(a.month.Year(), a.month.Month())
	done := 0
	for _, dl := range monthLogs {
		if dl.Done {
			done++
		}
	}
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d days logged, %d done this month", len(monthLogs), done)))

	return b.String()
}

// renderGrid draws the six-week grid, each cell three lines tall: day number
// and done mark, up to two focus tags, then overflow and exercise count.
func (a App) renderGrid(cells []calendar.Cell, outerW int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)
	cellW := max((inner-6)/7, 5)

	base := lipgloss.NewStyle().Width(cellW).Background(t.Surface)
	headerStyle := base.Foreground(t.Accent).Bold(true)
	gap := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var b strings.Builder
	headers := make([]string, len(calendar.Weekdays))
	for i, wd := range calendar.Weekdays {
		headers[i] = headerStyle.Render(wd)
	}
	b.WriteString(strings.Join(headers, gap))
	b.WriteString("\n")

	for r, row := range calendar.Rows(cells) {
		rendered := make([]string, len(row))
		for i, c := range row {
			rendered[i] = a.renderCell(c, cellW)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered, gapColumn(3))...))
		if r < gridWeeks-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

const gridWeeks = calendar.GridCells / 7

func gapColumn(h int) string {
	s := lipgloss.NewStyle().Background(theme.Active.Surface).Render(" ")
	return strings.TrimSuffix(strings.Repeat(s+"\n", h), "\n")
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

func (a App) renderCell(c calendar.Cell, w int) string {
	t := theme.Active

	bg := t.Surface
	if calendar.SameDay(c.Date, a.selected) {
		bg = t.SurfaceBright
	}
	style := lipgloss.NewStyle().Width(w).Background(bg)

	numStyle := style.Foreground(t.TextPrimary)
	switch {
	case !c.InMonth:
		numStyle = style.Foreground(t.TextDim)
	case calendar.SameDay(c.Date, a.today):
		numStyle = style.Foreground(t.Today).Bold(true)
	case c.Done:
		numStyle = style.Foreground(t.Done)
	}
	mark := ""
	if c.Done {
		mark = " ✓"
	}
	line1 := numStyle.Render(strconv.Itoa(c.Date.Day()) + mark)

	tagStyle := style.Foreground(t.Focus)
	if !c.InMonth {
		tagStyle = style.Foreground(t.TextDim)
	}
	line2 := tagStyle.Render(truncStr(strings.Join(c.Focus, " "), w))

	var extra []string
	if c.FocusOverflow > 0 {
		extra = append(extra, fmt.Sprintf("+%d", c.FocusOverflow))
	}
	if c.Exercises > 0 {
		extra = append(extra, fmt.Sprintf("%dx", c.Exercises))
	}
	line3 := style.Foreground(t.TextMuted).Render(truncStr(strings.Join(extra, " "), w))

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
}

func (a App) renderDaySummaryCard(w int) string {
	t := theme.Active
	dl := a.logs.Get(a.selectedKey())
	unit := a.prefs.Unit()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	inner := components.CardInnerWidth(w)

	status := "not done"
	if dl.Done {
		status = "done ✓"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Status:  ") + valueStyle.Render(status) + "\n")
	b.WriteString(labelStyle.Render("Focus:   ") + valueStyle.Render(truncStr(cli.FormatFocus(dl.Focus, 0), inner-9)) + "\n")
	b.WriteString(labelStyle.Render("Volume:  ") + valueStyle.Render(cli.FormatVolume(dl.TotalVolume(), unit)) + "\n")
	if len(dl.Exercises) == 0 {
		b.WriteString(labelStyle.Render("No exercises"))
	}
	for i, ex := range dl.Exercises {
		line := fmt.Sprintf("%s %dx%d %s", ex.Name, ex.Sets, ex.Reps, cli.FormatWeight(ex.Weight, unit))
		b.WriteString(valueStyle.Render(truncStr(line, inner)))
		if i < len(dl.Exercises)-1 {
			b.WriteString("\n")
		}
	}

	return components.ContentCard(a.selected.Format("Mon Jan 2"), b.String(), w)
}

func (a App) renderWeekStrip(cw int) string {
	week := calendar.Week(a.selected, a.logs)
	widths := components.LayoutRow(cw, len(week))

	cards := make([]string, len(week))
	for i, c := range week {
		title := cli.FormatDayOfWeek(int(c.Date.Weekday())) + " " + strconv.Itoa(c.Date.Day())
		body := "-"
		switch {
		case c.Done:
			body = "✓ " + strings.Join(c.Focus, " ")
		case c.Logged:
			body = fmt.Sprintf("%dx", c.Exercises)
		}
		body = truncStr(body, components.CardInnerWidth(widths[i]))
		if calendar.SameDay(c.Date, a.selected) {
			cards[i] = components.FocusedCard(title, body, widths[i])
		} else {
			cards[i] = components.ContentCard(title, body, widths[i])
		}
	}
	return components.CardRow(cards)
}
