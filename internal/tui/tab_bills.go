package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/bills"
	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// billsState tracks the Bills tab.
type billsState struct {
	month     string // "YYYY-MM"; empty picks the newest month with bills
	cursor    int
	searching bool
	search    textinput.Model
	query     string
}

func newBillsState() billsState {
	return billsState{search: newSearchInput()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search titles..."
	ti.CharLimit = 100
	ti.Width = 40
	return ti
}

func (s *billsState) move(delta, n int) {
	s.cursor += delta
	s.clampCursor(n)
}

func (s *billsState) clampCursor(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// currentMonth resolves the month the tab shows.
func (a App) currentMonth() (string, []string) {
	months := bills.Months(a.book.All())
	if a.bill.month != "" {
		return a.bill.month, months
	}
	if len(months) > 0 {
		return months[0], months
	}
	return bills.MonthKeyOf(a.today), months
}

func (a App) visibleBills() []model.Bill {
	month, _ := a.currentMonth()
	return bills.Filter(a.book.All(), month, a.bill.query)
}

// nextStatus cycles Process -> Done -> Skip -> Process.
func nextStatus(s model.BillStatus) model.BillStatus {
	switch s {
	case model.BillProcess:
		return model.BillDone
	case model.BillDone:
		return model.BillSkip
	default:
		return model.BillProcess
	}
}

func (a App) updateBillsKeys(key string) (App, tea.Cmd, bool) {
	list := a.visibleBills()

	setStatus := func(status model.BillStatus) tea.Cmd {
		if len(list) == 0 {
			return nil
		}
		a.bill.clampCursor(len(list))
		b := list[a.bill.cursor]
		return writeCmd(fmt.Sprintf("%s → %s", b.Title, status), func() error {
			return a.book.SetStatus(b.ID, status)
		})
	}

	switch key {
	case "[", "]":
		month, months := a.currentMonth()
		// months are newest first, so "[" (older) moves forward in the list.
		idx := indexOf(months, month)
		if key == "[" {
			idx++
		} else {
			idx--
		}
		if idx >= 0 && idx < len(months) {
			a.bill.month = months[idx]
			a.bill.cursor = 0
		}
	case "/":
		a.bill.searching = true
		a.bill.search = newSearchInput()
		a.bill.search.SetValue(a.bill.query)
		a.bill.search.Focus()
		return a, textinput.Blink, true
	case "esc":
		a.bill.query = ""
		a.bill.cursor = 0
	case "j", "down":
		a.bill.move(1, len(list))
	case "k", "up":
		a.bill.move(-1, len(list))
	case "enter", " ":
		if len(list) == 0 {
			return a, nil, true
		}
		a.bill.clampCursor(len(list))
		return a, setStatus(nextStatus(list[a.bill.cursor].Status)), true
	case "D":
		return a, setStatus(model.BillDone), true
	case "P":
		return a, setStatus(model.BillProcess), true
	case "S":
		return a, setStatus(model.BillSkip), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// updateBillsSearch handles key events while in search mode.
func (a App) updateBillsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.bill.query = strings.TrimSpace(a.bill.search.Value())
		a.bill.searching = false
		a.bill.cursor = 0
		return a, nil
	case "esc":
		a.bill.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.bill.search, cmd = a.bill.search.Update(msg)
	return a, cmd
}

func (a App) renderBillsTab(cw int) string {
	t := theme.Active
	month, _ := a.currentMonth()
	list := a.visibleBills()
	sum := bills.Summarize(list)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total", Value: cli.FormatMoney(sum.Total), Delta: fmt.Sprintf("%d bills", sum.Count)},
		{Label: "Paid", Value: cli.FormatMoney(sum.Done)},
		{Label: "Remaining", Value: cli.FormatMoney(sum.Remaining)},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	barW := max(inner-34, 10)
	progress := components.LabeledBar("Paid", float64(sum.Progress)/100, bills.MonthLabel(month), 6, barW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var body strings.Builder
	body.WriteString(progress)
	body.WriteString("\n")
	switch {
	case a.bill.searching:
		body.WriteString(accentStyle.Render("/ ") + a.bill.search.View())
	case a.bill.query != "":
		body.WriteString(labelStyle.Render("Filter: ") + accentStyle.Render(a.bill.query) + labelStyle.Render("  [esc] clear"))
	default:
		body.WriteString(labelStyle.Render("[/] search  [[ ]] month"))
	}
	body.WriteString("\n\n")
	body.WriteString(a.renderBillRows(list, inner))

	b.WriteString(components.ContentCard(bills.MonthLabel(month), body.String(), cw))
	return b.String()
}

func (a App) renderBillRows(list []model.Bill, inner int) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(list) == 0 {
		return mutedStyle.Render("No bills match.")
	}

	titleW := max(inner-36, 10)
	format := fmt.Sprintf("%%-%ds %%-10s %%-8s %%14s", titleW)

	statusColor := map[model.BillStatus]lipgloss.Color{
		model.BillDone:    t.Done,
		model.BillProcess: t.Pending,
		model.BillSkip:    t.TextDim,
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(format, "Title", "Due", "Status", "Amount")))
	for i, bill := range list {
		line := fmt.Sprintf(format, truncStr(bill.Title, titleW), bill.DueDate, bill.Status, cli.FormatMoney(bill.Amount))
		b.WriteString("\n")
		if i == a.bill.cursor {
			b.WriteString(selStyle.Width(inner).Render(line))
			continue
		}
		style := rowStyle.Foreground(statusColor[bill.Status])
		if bills.IsOverdue(bill, a.today) {
			style = rowStyle.Foreground(t.Overdue)
		}
		b.WriteString(style.Render(line))
	}
	return b.String()
}
