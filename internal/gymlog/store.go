// Package gymlog holds the workout log: a date-keyed store of day logs,
// exercise presets, and the display unit preference.
package gymlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
)

// Persisted keys.
const (
	KeyLogs    = "gym-logs.v1"
	KeyUnit    = "gym-unit.v1"
	KeyPresets = "gym-presets.v1"
)

// DateLayout is the date-key format: a local calendar day with no time.
const DateLayout = "2006-01-02"

var (
	// ErrEmptyName is returned when an exercise name is blank.
	ErrEmptyName = errors.New("exercise name is empty")
	// ErrInvalidCount is returned for non-positive sets or reps.
	ErrInvalidCount = errors.New("sets and reps must be positive")
	// ErrExerciseNotFound is returned when no exercise has the given ID on that day.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrInvalidDate is returned for a malformed date key.
	ErrInvalidDate = errors.New("invalid date key")
	// ErrInvalidWeight is returned for an infinite weight.
	ErrInvalidWeight = errors.New("weight must be a finite number")
)

// Default form values used when adding an exercise.
const (
	DefaultSets     = 3
	DefaultReps     = 10
	DefaultWeightKg = 20.0
)

// DateKey formats t as a date key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a date key as local midnight.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Store is the in-memory day log map, flushed to a KV after every mutation.
type Store struct {
	mu   sync.Mutex
	kv   store.KV
	logs map[string]model.DayLog
	log  *log.Logger
}

// Load reads the day logs from kv. A missing or malformed value yields an
// empty store; the failure is logged, never returned.
func Load(kv store.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Store{
		kv:   kv,
		logs: make(map[string]model.DayLog),
		log:  logger.WithComponent("daylogs"),
	}

	raw, ok, err := kv.Get(KeyLogs)
	if err != nil {
		s.log.Warn("reading day logs, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var stored map[string]model.DayLog
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Warn("malformed day logs, starting empty", "error", err)
		return s
	}

	for key, dl := range stored {
		if _, err := ParseDateKey(key); err != nil {
			s.log.Warn("skipping day log with bad key", "key", key)
			continue
		}
		dl.Date = key
		s.logs[key] = normalize(dl)
	}
	s.log.Debug("loaded day logs", "days", len(s.logs))
	return s
}

func normalize(dl model.DayLog) model.DayLog {
	if dl.Focus == nil {
		dl.Focus = []string{}
	}
	if dl.Exercises == nil {
		dl.Exercises = []model.Exercise{}
	}
	return dl
}

// Get returns the log for date, or an empty log if nothing is stored.
func (s *Store) Get(date string) model.DayLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dl, ok := s.logs[date]; ok {
		return dl.Clone()
	}
	return model.EmptyDayLog(date)
}

// Lookup returns the stored log for date and whether one exists.
func (s *Store) Lookup(date string) (model.DayLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dl, ok := s.logs[date]
	if !ok {
		return model.DayLog{}, false
	}
	return dl.Clone(), true
}

// Mutate applies fn to the current (possibly empty) log for date, stores the
// result, and flushes the whole store. It is the only write path.
func (s *Store) Mutate(date string, fn func(model.DayLog) model.DayLog) error {
	if _, err := ParseDateKey(date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.logs[date]
	cur := prev
	if !existed {
		cur = model.EmptyDayLog(date)
	}
	next := normalize(fn(cur.Clone()))
	next.Date = date
	s.logs[date] = next

	data, err := json.Marshal(s.logs)
	if err != nil {
		// Unencodable entries would poison every later flush.
		if existed {
			s.logs[date] = prev
		} else {
			delete(s.logs, date)
		}
		return fmt.Errorf("encoding day logs: %w", err)
	}
	return s.flushLocked(data)
}

func (s *Store) flushLocked(data []byte) error {
	if err := s.kv.Set(KeyLogs, data); err != nil {
		s.log.Error("flushing day logs", "error", err)
		return fmt.Errorf("saving day logs: %w", err)
	}
	return nil
}

// ToggleDone flips the completion flag for date.
func (s *Store) ToggleDone(date string) error {
	return s.Mutate(date, func(d model.DayLog) model.DayLog {
		d.Done = !d.Done
		return d
	})
}

// ToggleFocus adds tag to the day's focus set, or removes it if present.
func (s *Store) ToggleFocus(date, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	return s.Mutate(date, func(d model.DayLog) model.DayLog {
		if d.HasFocus(tag) {
			kept := d.Focus[:0]
			for _, t := range d.Focus {
				if t != tag {
					kept = append(kept, t)
				}
			}
			d.Focus = kept
			return d
		}
		d.Focus = append(d.Focus, tag)
		return d
	})
}

// SetNote replaces the day's free-text note.
func (s *Store) SetNote(date, note string) error {
	note = strings.TrimSpace(note)
	return s.Mutate(date, func(d model.DayLog) model.DayLog {
		d.Note = note
		return d
	})
}

// ExerciseInput is the add-exercise form. Weight is in Unit.
type ExerciseInput struct {
	Name   string
	Sets   int
	Reps   int
	Weight float64
	Note   string
	Unit   model.Unit
}

// AddExercise appends a new exercise to date. A blank name is rejected with
// ErrEmptyName and nothing is written.
func (s *Store) AddExercise(date string, in ExerciseInput) (model.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Exercise{}, ErrEmptyName
	}

	sets, reps := in.Sets, in.Reps
	if sets <= 0 {
		sets = DefaultSets
	}
	if reps <= 0 {
		reps = DefaultReps
	}

	kg, err := clampWeight(FromDisplay(in.Weight, in.Unit))
	if err != nil {
		return model.Exercise{}, err
	}

	ex := model.Exercise{
		ID:     uuid.NewString(),
		Name:   name,
		Sets:   sets,
		Reps:   reps,
		Weight: kg,
		Note:   strings.TrimSpace(in.Note),
	}

	err = s.Mutate(date, func(d model.DayLog) model.DayLog {
		d.Exercises = append(d.Exercises, ex)
		return d
	})
	if err != nil {
		return model.Exercise{}, err
	}
	return ex, nil
}

// clampWeight maps NaN and negative weights to 0 and rejects infinities.
func clampWeight(kg float64) (float64, error) {
	switch {
	case math.IsInf(kg, 0):
		return 0, ErrInvalidWeight
	case math.IsNaN(kg) || kg < 0:
		return 0, nil
	}
	return kg, nil
}

// ExercisePatch holds the fields to change on an exercise. Nil fields are kept.
// Weight is in the display unit passed to EditExercise.
type ExercisePatch struct {
	Name   *string
	Sets   *int
	Reps   *int
	Weight *float64
	Note   *string
}

// EditExercise applies patch to the exercise id on date.
func (s *Store) EditExercise(date, id string, patch ExercisePatch, unit model.Unit) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrEmptyName
	}
	if (patch.Sets != nil && *patch.Sets <= 0) || (patch.Reps != nil && *patch.Reps <= 0) {
		return ErrInvalidCount
	}
	var kg float64
	if patch.Weight != nil {
		var err error
		if kg, err = clampWeight(FromDisplay(*patch.Weight, unit)); err != nil {
			return err
		}
	}
	if s.Get(date).FindExercise(id) < 0 {
		return fmt.Errorf("%w: %s on %s", ErrExerciseNotFound, id, date)
	}

	return s.Mutate(date, func(d model.DayLog) model.DayLog {
		i := d.FindExercise(id)
		if i < 0 {
			return d
		}
		ex := d.Exercises[i]
		if patch.Name != nil {
			ex.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Sets != nil {
			ex.Sets = *patch.Sets
		}
		if patch.Reps != nil {
			ex.Reps = *patch.Reps
		}
		if patch.Weight != nil {
			ex.Weight = kg
		}
		if patch.Note != nil {
			ex.Note = strings.TrimSpace(*patch.Note)
		}
		d.Exercises[i] = ex
		return d
	})
}

// StepField names the exercise field a stepper adjusts.
type StepField int

const (
	StepSets StepField = iota
	StepReps
	StepWeight
)

func (f StepField) String() string {
	switch f {
	case StepSets:
		return "sets"
	case StepReps:
		return "reps"
	default:
		return "weight"
	}
}

// Next cycles sets -> reps -> weight -> sets.
func (f StepField) Next() StepField {
	return (f + 1) % 3
}

// StepExercise moves one field of exercise id by dir steps and writes only
// that field. Sets and reps move by 1 and stay at least 1; weight moves by
// StepFor(unit) in the display unit and stays at least 0.
func (s *Store) StepExercise(date, id string, field StepField, dir int, unit model.Unit) error {
	dl := s.Get(date)
	i := dl.FindExercise(id)
	if i < 0 {
		return fmt.Errorf("%w: %s on %s", ErrExerciseNotFound, id, date)
	}
	ex := dl.Exercises[i]

	var patch ExercisePatch
	switch field {
	case StepSets:
		v := max(1, ex.Sets+dir)
		patch.Sets = &v
	case StepReps:
		v := max(1, ex.Reps+dir)
		patch.Reps = &v
	case StepWeight:
		v := Step(ToDisplay(ex.Weight, unit), float64(dir)*StepFor(unit), 0)
		patch.Weight = &v
	}
	return s.EditExercise(date, id, patch, unit)
}

// RemoveExercise deletes exercise id from date. The day log itself stays,
// with its done flag and focus tags untouched.
func (s *Store) RemoveExercise(date, id string) error {
	if s.Get(date).FindExercise(id) < 0 {
		return fmt.Errorf("%w: %s on %s", ErrExerciseNotFound, id, date)
	}
	return s.Mutate(date, func(d model.DayLog) model.DayLog {
		kept := d.Exercises[:0]
		for _, ex := range d.Exercises {
			if ex.ID != id {
				kept = append(kept, ex)
			}
		}
		d.Exercises = kept
		return d
	})
}

// LastRecordedWeight returns the kilogram weight of the most recent exercise
// named name (case-insensitive), scanning dates newest first.
func (s *Store) LastRecordedWeight(name string) (float64, bool) {
	want := model.NormalizeName(name)
	if want == "" {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.keysLocked()
	for i := len(keys) - 1; i >= 0; i-- {
		for _, ex := range s.logs[keys[i]].Exercises {
			if model.NormalizeName(ex.Name) == want {
				return ex.Weight, true
			}
		}
	}
	return 0, false
}

func (s *Store) keysLocked() []string {
	keys := make([]string, 0, len(s.logs))
	for k := range s.logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MonthLogs returns the stored logs whose date falls in year/month.
func (s *Store) MonthLogs(year int, month time.Month) map[string]model.DayLog {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]model.DayLog)
	for k, dl := range s.logs {
		if strings.HasPrefix(k, prefix) {
			out[k] = dl.Clone()
		}
	}
	return out
}

// Snapshot returns a copy of every stored log.
func (s *Store) Snapshot() map[string]model.DayLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.DayLog, len(s.logs))
	for k, dl := range s.logs {
		out[k] = dl.Clone()
	}
	return out
}

// Len returns the number of stored days.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}
