// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
)

// FormatWeight renders a canonical kg weight in the display unit.
// e.g., (20, lb) -> "44.1 lb", (60, kg) -> "60 kg"
func FormatWeight(kg float64, unit model.Unit) string {
	return FormatDecimal(gymlog.ToDisplay(kg, unit)) + " " + string(unit)
}

// FormatDecimal prints at most one decimal place, dropping a trailing ".0".
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// FormatMoney formats a USD amount with thousands separators and cents.
// e.g., 1200 -> "$1,200.00"
func FormatMoney(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	s := fmt.Sprintf("$%s.%02d", FormatNumber(cents/100), cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatVolume formats a sets*reps*weight total in the display unit.
// e.g., 12345 kg -> "12.3K kg"
func FormatVolume(kg float64, unit model.Unit) string {
	v := gymlog.ToDisplay(kg, unit)
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM %s", v/1_000_000, unit)
	case v >= 10_000:
		return fmt.Sprintf("%.1fK %s", v/1_000, unit)
	default:
		return FormatNumber(int64(math.Round(v))) + " " + string(unit)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatFocus joins focus tags, collapsing extras into a "+N" suffix.
func FormatFocus(tags []string, overflow int) string {
	if len(tags) == 0 {
		return "-"
	}
	s := strings.Join(tags, ", ")
	if overflow > 0 {
		s += fmt.Sprintf(" +%d", overflow)
	}
	return s
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
