// Package calendar builds the fixed six-week month grid and the week strip
// the workout views render.
package calendar

import (
	"time"

	"github.com/theirongolddev/liftlog/internal/model"
)

// GridCells is the size of every month grid: six Sunday-start weeks.
const GridCells = 42

// MaxFocusShown is how many focus tags a cell carries before overflowing.
const MaxFocusShown = 2

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// LogSource looks up the stored log for a date key.
type LogSource interface {
	Lookup(date string) (model.DayLog, bool)
}

// Cell describes one day in a grid.
type Cell struct {
	Date          time.Time
	Key           string
	InMonth       bool
	Logged        bool
	Done          bool
	Focus         []string // at most MaxFocusShown
	FocusOverflow int
	Exercises     int
}

// MonthStart returns midnight on the first of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths returns the first of the month n months from t's month.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Build returns the 42-cell grid for viewMonth: the trailing days of the
// previous month up to the first Sunday, every day of the month, then the
// following month's days until six full weeks are filled. The grid is always
// six weeks even when the month fits in four or five.
func Build(viewMonth time.Time, src LogSource) []Cell {
	first := MonthStart(viewMonth)
	lead := int(first.Weekday())
	start := first.AddDate(0, 0, -lead)

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, annotate(d, d.Year() == first.Year() && d.Month() == first.Month(), src))
	}
	return cells
}

// Week returns the seven cells of anchor's Sunday-start week. InMonth is
// relative to anchor's month.
func Week(anchor time.Time, src LogSource) []Cell {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, annotate(d, d.Month() == day.Month(), src))
	}
	return cells
}

func annotate(d time.Time, inMonth bool, src LogSource) Cell {
	c := Cell{
		Date:    d,
		Key:     d.Format("2006-01-02"),
		InMonth: inMonth,
	}
	if src == nil {
		return c
	}
	dl, ok := src.Lookup(c.Key)
	if !ok {
		return c
	}
	c.Logged = true
	c.Done = dl.Done
	c.Exercises = len(dl.Exercises)
	if len(dl.Focus) > MaxFocusShown {
		c.Focus = append([]string{}, dl.Focus[:MaxFocusShown]...)
		c.FocusOverflow = len(dl.Focus) - MaxFocusShown
	} else {
		c.Focus = append([]string{}, dl.Focus...)
	}
	return c
}

// IndexOf returns the index of the cell on d's calendar day, or -1.
func IndexOf(cells []Cell, d time.Time) int {
	for i, c := range cells {
		if SameDay(c.Date, d) {
			return i
		}
	}
	return -1
}

// Rows splits cells into weeks of seven.
func Rows(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		rows = append(rows, cells[i:end])
	}
	return rows
}
