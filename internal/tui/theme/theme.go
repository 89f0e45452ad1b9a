// Package theme defines color themes for the liftlog dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps dashboard roles to colors. The chrome roles style cards, tabs
// and text; the remaining roles carry workout and bill state.
type Theme struct {
	Name string

	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Active tab, unselected chips
	SurfaceBright lipgloss.Color // Selected row or calendar cell
	Border        lipgloss.Color // Card borders
	BorderAccent  lipgloss.Color // Focused card border
	TextDim       lipgloss.Color // Hints, days outside the month
	TextMuted     lipgloss.Color // Labels
	TextPrimary   lipgloss.Color // Content
	Accent        lipgloss.Color // Headings, active states
	AccentBright  lipgloss.Color // Cursor markers
	Key           lipgloss.Color // Keys in the help overlay

	Done       lipgloss.Color // Finished workouts, paid bills, full progress
	DoneBright lipgloss.Color // "Done" banner, save confirmations
	Today      lipgloss.Color // Today's date on the calendar
	Focus      lipgloss.Color // Muscle focus tags, stepper target
	Pending    lipgloss.Color // Bills still to pay, half-way progress
	Warning    lipgloss.Color // Failed writes, low progress
	Overdue    lipgloss.Color // Unpaid bills past their due date
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, warm and paper-like.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceHover:  lipgloss.Color("#282726"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	Key:           lipgloss.Color("#24837B"),
	Done:          lipgloss.Color("#879A39"),
	DoneBright:    lipgloss.Color("#A3B859"),
	Today:         lipgloss.Color("#DA702C"),
	Focus:         lipgloss.Color("#CE5D97"),
	Pending:       lipgloss.Color("#D0A215"),
	Warning:       lipgloss.Color("#DA702C"),
	Overdue:       lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    lipgloss.Color("#1E1E2E"),
	Surface:       lipgloss.Color("#313244"),
	SurfaceHover:  lipgloss.Color("#45475A"),
	SurfaceBright: lipgloss.Color("#585B70"),
	Border:        lipgloss.Color("#585B70"),
	BorderAccent:  lipgloss.Color("#89B4FA"),
	TextDim:       lipgloss.Color("#6C7086"),
	TextMuted:     lipgloss.Color("#A6ADC8"),
	TextPrimary:   lipgloss.Color("#CDD6F4"),
	Accent:        lipgloss.Color("#89B4FA"),
	AccentBright:  lipgloss.Color("#B4D0FB"),
	Key:           lipgloss.Color("#94E2D5"),
	Done:          lipgloss.Color("#A6E3A1"),
	DoneBright:    lipgloss.Color("#C6F6C1"),
	Today:         lipgloss.Color("#FAB387"),
	Focus:         lipgloss.Color("#F5C2E7"),
	Pending:       lipgloss.Color("#F9E2AF"),
	Warning:       lipgloss.Color("#FAB387"),
	Overdue:       lipgloss.Color("#F38BA8"),
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    lipgloss.Color("#1A1B26"),
	Surface:       lipgloss.Color("#24283B"),
	SurfaceHover:  lipgloss.Color("#343A52"),
	SurfaceBright: lipgloss.Color("#414868"),
	Border:        lipgloss.Color("#565F89"),
	BorderAccent:  lipgloss.Color("#7AA2F7"),
	TextDim:       lipgloss.Color("#565F89"),
	TextMuted:     lipgloss.Color("#A9B1D6"),
	TextPrimary:   lipgloss.Color("#C0CAF5"),
	Accent:        lipgloss.Color("#7AA2F7"),
	AccentBright:  lipgloss.Color("#A9C1FF"),
	Key:           lipgloss.Color("#7DCFFF"),
	Done:          lipgloss.Color("#9ECE6A"),
	DoneBright:    lipgloss.Color("#B9E87A"),
	Today:         lipgloss.Color("#FF9E64"),
	Focus:         lipgloss.Color("#BB9AF7"),
	Pending:       lipgloss.Color("#E0AF68"),
	Warning:       lipgloss.Color("#FF9E64"),
	Overdue:       lipgloss.Color("#F7768E"),
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	Key:           lipgloss.Color("6"),
	Done:          lipgloss.Color("2"),
	DoneBright:    lipgloss.Color("10"),
	Today:         lipgloss.Color("11"),
	Focus:         lipgloss.Color("5"),
	Pending:       lipgloss.Color("3"),
	Warning:       lipgloss.Color("3"),
	Overdue:       lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after name, wrapping around.
func Next(name string) Theme {
	for i, t := range All {
		if t.Name == name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}
