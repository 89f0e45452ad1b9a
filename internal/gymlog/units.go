package gymlog

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/liftlog/internal/model"
)

const lbPerKg = 2.20462

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// KgToLb converts kilograms to pounds, rounded to one decimal.
func KgToLb(kg float64) float64 {
	return round1(kg * lbPerKg)
}

// LbToKg converts pounds to kilograms, rounded to one decimal.
// KgToLb and LbToKg are not exact inverses; values already saved depend on
// this rounding, so it must not be made more precise.
func LbToKg(lb float64) float64 {
	return round1(lb / lbPerKg)
}

// ToDisplay converts a stored kilogram weight to the display unit.
func ToDisplay(kg float64, unit model.Unit) float64 {
	if unit == model.UnitLb {
		return KgToLb(kg)
	}
	return kg
}

// FromDisplay converts a weight entered in the display unit to kilograms.
func FromDisplay(v float64, unit model.Unit) float64 {
	if unit == model.UnitLb {
		return LbToKg(v)
	}
	return v
}

// ParseUnit parses "kg" or "lb" (case-insensitive).
func ParseUnit(s string) (model.Unit, error) {
	switch model.Unit(strings.ToLower(strings.TrimSpace(s))) {
	case model.UnitKg:
		return model.UnitKg, nil
	case model.UnitLb:
		return model.UnitLb, nil
	}
	return "", fmt.Errorf("unknown unit %q (want kg or lb)", s)
}

// StepFor returns the weight stepper increment for a unit.
func StepFor(unit model.Unit) float64 {
	if unit == model.UnitLb {
		return 5
	}
	return 2.5
}

// Step moves value by delta, rounds to one decimal, and clamps at floor.
func Step(value, delta, floor float64) float64 {
	return math.Max(floor, round1(value+delta))
}
