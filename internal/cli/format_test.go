package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/liftlog/internal/calendar"
	"github.com/theirongolddev/liftlog/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{45, "$45.00"},
		{1200, "$1,200.00"},
		{2105.5, "$2,105.50"},
		{1234567.891, "$1,234,567.89"},
		{-60, "-$60.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		kg   float64
		unit model.Unit
		want string
	}{
		{20, model.UnitKg, "20 kg"},
		{20, model.UnitLb, "44.1 lb"},
		{62.5, model.UnitKg, "62.5 kg"},
		{0, model.UnitLb, "0 lb"},
	}
	for _, tt := range tests {
		if got := FormatWeight(tt.kg, tt.unit); got != tt.want {
			t.Errorf("FormatWeight(%v, %s) = %q, want %q", tt.kg, tt.unit, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	if got := FormatVolume(2400, model.UnitKg); got != "2,400 kg" {
		t.Fatalf("FormatVolume = %q, want 2,400 kg", got)
	}
	if got := FormatVolume(12345, model.UnitKg); got != "12.3K kg" {
		t.Fatalf("FormatVolume = %q, want 12.3K kg", got)
	}
}

func TestFormatFocus(t *testing.T) {
	if got := FormatFocus(nil, 0); got != "-" {
		t.Fatalf("FormatFocus(nil) = %q", got)
	}
	if got := FormatFocus([]string{"Chest", "Back"}, 2); got != "Chest, Back +2" {
		t.Fatalf("FormatFocus = %q", got)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Kg"},
		Rows:    [][]string{{"Squat", "100"}, {"---"}, {"Plank", "0"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "Squat") || !strings.Contains(out, "  0 ") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestRenderCalendarHasSixWeeks(t *testing.T) {
	month := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.Local)
	cells := calendar.Build(month, nil)
	out := RenderCalendar(cells, month)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want header + 6 weeks", len(lines))
	}
}

func TestRenderProgressBarClamps(t *testing.T) {
	if got := RenderProgressBar(150, 10); !strings.HasSuffix(got, "100%") {
		t.Fatalf("RenderProgressBar(150) = %q", got)
	}
	if got := RenderProgressBar(50, 0); got != "" {
		t.Fatalf("RenderProgressBar(width 0) = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("RenderSparkline(nil) not empty")
	}
}
