package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/liftlog/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < n-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x=%d past the last tab -> %d, want -1", active, pos+5, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Calendar"),
		len("Day"),
		len("Bills"),
		len("Settings"),
	}
	// Every tab's key is in its name, so no "[x]" suffix.
	_ = activeIdx
	return nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := newTestApp(t)
	// "Calendar" is 10 wide, then a separator; x=12 lands inside "Day".
	m, _ := a.Update(tea.MouseMsg{X: 12, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabDay {
		t.Fatalf("activeTab = %d, want %d", got, tabDay)
	}
}

func TestMouseWheelMovesWeek(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got, want := m.(App).selectedKey(), "2026-03-17"; got != want {
		t.Fatalf("selected = %s, want %s", got, want)
	}
}
