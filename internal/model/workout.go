// Package model defines domain types for liftlog workouts and bills.
package model

import (
	"slices"
	"strings"
)

// Unit is the display unit for exercise weights. Stored weights are always kilograms.
type Unit string

const (
	UnitKg Unit = "kg"
	UnitLb Unit = "lb"
)

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitLb
}

// Exercise is one logged movement within a day.
type Exercise struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Sets   int     `json:"sets" yaml:"sets"`
	Reps   int     `json:"reps" yaml:"reps"`
	Weight float64 `json:"weight" yaml:"weight"` // kilograms
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// DayLog is everything recorded for a single calendar day.
type DayLog struct {
	Date      string     `json:"date" yaml:"date"` // "2025-09-01"
	Done      bool       `json:"done" yaml:"done"`
	Focus     []string   `json:"focus" yaml:"focus"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Note      string     `json:"note,omitempty" yaml:"note,omitempty"`
}

// EmptyDayLog returns the log a day has before anything is recorded for it.
func EmptyDayLog(date string) DayLog {
	return DayLog{
		Date:      date,
		Focus:     []string{},
		Exercises: []Exercise{},
	}
}

// Clone returns a copy that shares no slices with d.
func (d DayLog) Clone() DayLog {
	out := d
	out.Focus = append([]string{}, d.Focus...)
	out.Exercises = append([]Exercise{}, d.Exercises...)
	return out
}

// HasFocus reports whether tag is one of the day's focus tags.
func (d DayLog) HasFocus(tag string) bool {
	return slices.Contains(d.Focus, tag)
}

// FindExercise returns the index of the exercise with the given ID, or -1.
func (d DayLog) FindExercise(id string) int {
	for i, ex := range d.Exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}

// TotalVolume sums sets*reps*weight (kg) across the day's exercises.
func (d DayLog) TotalVolume() float64 {
	var v float64
	for _, ex := range d.Exercises {
		v += float64(ex.Sets*ex.Reps) * ex.Weight
	}
	return v
}

// NormalizeName folds an exercise name for matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
