package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
)

func TestResolveExerciseID(t *testing.T) {
	dl := model.DayLog{
		Date: "2025-09-01",
		Exercises: []model.Exercise{
			{ID: "abc123", Name: "Squat"},
			{ID: "abd456", Name: "Bench"},
		},
	}

	if id, err := resolveExerciseID(dl, "abc"); err != nil || id != "abc123" {
		t.Fatalf("resolveExerciseID(abc) = (%q, %v)", id, err)
	}
	if _, err := resolveExerciseID(dl, "ab"); err == nil {
		t.Fatal("ambiguous prefix accepted")
	}
	if _, err := resolveExerciseID(dl, "zzz"); !errors.Is(err, gymlog.ErrExerciseNotFound) {
		t.Fatalf("missing prefix err = %v", err)
	}
	if _, err := resolveExerciseID(dl, ""); !errors.Is(err, gymlog.ErrExerciseNotFound) {
		t.Fatalf("empty prefix err = %v", err)
	}
}

func TestCanonicalFocus(t *testing.T) {
	if got := canonicalFocus(" full body "); got != "Full Body" {
		t.Fatalf("canonicalFocus = %q, want Full Body", got)
	}
	if got := canonicalFocus("Grip"); got != "Grip" {
		t.Fatalf("canonicalFocus = %q, want Grip", got)
	}
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-09-01")
	if err != nil || gymlog.DateKey(d) != "2025-09-01" {
		t.Fatalf("parseDay = (%v, %v)", d, err)
	}
	if _, err := parseDay("09/01/2025"); !errors.Is(err, gymlog.ErrInvalidDate) {
		t.Fatalf("parseDay(bad) err = %v", err)
	}
}
