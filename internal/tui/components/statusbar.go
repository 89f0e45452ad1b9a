package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and a
// message on the right. Errors render in the warning color.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	msgStyle := style.Foreground(t.DoneBright)
	if isErr {
		msgStyle = style.Foreground(t.Warning)
	}

	left := style.Render(" " + hints)
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(strings.Repeat(" ", padding)) + right
}
