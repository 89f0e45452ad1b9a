package gymlog

import (
	"math"
	"testing"

	"github.com/theirongolddev/liftlog/internal/model"
)

func TestKgLbRoundTripWithinTolerance(t *testing.T) {
	if got := LbToKg(KgToLb(20.0)); math.Abs(got-20.0) > 0.1+1e-9 {
		t.Fatalf("LbToKg(KgToLb(20)) = %.2f, want 20 ± 0.1", got)
	}
	if got := KgToLb(LbToKg(44.0)); math.Abs(got-44.0) > 0.1+1e-9 {
		t.Fatalf("KgToLb(LbToKg(44)) = %.2f, want 44 ± 0.1", got)
	}
}

func TestConversionsRoundToOneDecimal(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"20kg", KgToLb(20), 44.1},
		{"100kg", KgToLb(100), 220.5},
		{"45lb", LbToKg(45), 20.4},
		{"zero", KgToLb(0), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %.2f, want %.2f", tt.name, tt.got, tt.want)
		}
	}
}

func TestDisplayConversionByUnit(t *testing.T) {
	if got := ToDisplay(60, model.UnitKg); got != 60 {
		t.Fatalf("ToDisplay(60, kg) = %v, want 60", got)
	}
	if got := ToDisplay(60, model.UnitLb); got != 132.3 {
		t.Fatalf("ToDisplay(60, lb) = %v, want 132.3", got)
	}
	if got := FromDisplay(132.3, model.UnitLb); got != 60 {
		t.Fatalf("FromDisplay(132.3, lb) = %v, want 60", got)
	}
	if got := FromDisplay(42.5, model.UnitKg); got != 42.5 {
		t.Fatalf("FromDisplay(42.5, kg) = %v, want 42.5", got)
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]model.Unit{"kg": model.UnitKg, " LB ": model.UnitLb} {
		got, err := ParseUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseUnit(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}
	if _, err := ParseUnit("stone"); err == nil {
		t.Fatal("ParseUnit(stone) succeeded, want error")
	}
}

func TestStepClampsAndRounds(t *testing.T) {
	if got := Step(2.5, -StepFor(model.UnitKg), 0); got != 0 {
		t.Fatalf("Step down to floor = %v, want 0", got)
	}
	if got := Step(1, -StepFor(model.UnitKg), 0); got != 0 {
		t.Fatalf("Step below floor = %v, want 0", got)
	}
	if got := Step(44.1, StepFor(model.UnitLb), 0); got != 49.1 {
		t.Fatalf("Step lb up = %v, want 49.1", got)
	}
}
