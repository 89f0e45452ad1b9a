package gymlog

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
)

// DefaultExercisePresets seeds the preset list on first run.
var DefaultExercisePresets = []string{
	"Bench Press",
	"Incline DB Press",
	"Lat Pulldown",
	"Barbell Row",
	"Squat",
	"Deadlift",
	"Overhead Press",
	"Bicep Curl",
	"Triceps Pushdown",
	"Plank",
}

// MusclePresets are the focus tags offered for a day.
var MusclePresets = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core", "Push", "Pull", "Full Body"}

// Prefs holds the display unit and the exercise preset list.
type Prefs struct {
	mu      sync.Mutex
	kv      store.KV
	unit    model.Unit
	presets []string
	log     *log.Logger
}

// LoadPrefs reads the unit and presets from kv, falling back to "kg" and
// DefaultExercisePresets when either is missing or malformed.
func LoadPrefs(kv store.KV, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.Discard()
	}
	p := &Prefs{
		kv:      kv,
		unit:    model.UnitKg,
		presets: slices.Clone(DefaultExercisePresets),
		log:     logger.WithComponent("prefs"),
	}

	if raw, ok, err := kv.Get(KeyUnit); err != nil {
		p.log.Warn("reading unit", "error", err)
	} else if ok {
		var u model.Unit
		if err := json.Unmarshal(raw, &u); err != nil || !u.Valid() {
			p.log.Warn("malformed unit, using kg", "raw", string(raw))
		} else {
			p.unit = u
		}
	}

	if raw, ok, err := kv.Get(KeyPresets); err != nil {
		p.log.Warn("reading presets", "error", err)
	} else if ok {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil || list == nil {
			p.log.Warn("malformed presets, using defaults")
		} else {
			p.presets = dedupe(list)
		}
	}
	return p
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, name := range list {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Unit returns the current display unit.
func (p *Prefs) Unit() model.Unit {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unit
}

// SetUnit changes and persists the display unit. Stored weights are untouched.
func (p *Prefs) SetUnit(u model.Unit) error {
	if !u.Valid() {
		return fmt.Errorf("unknown unit %q", u)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unit = u
	return p.save(KeyUnit, u)
}

// ToggleUnit switches between kg and lb and returns the new unit. The read
// and the write happen under one lock, so concurrent toggles each flip.
func (p *Prefs) ToggleUnit() (model.Unit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := model.UnitLb
	if p.unit == model.UnitLb {
		next = model.UnitKg
	}
	p.unit = next
	return next, p.save(KeyUnit, next)
}

// Presets returns a copy of the preset list.
func (p *Prefs) Presets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.presets)
}

// AddPreset appends name if it is non-blank and not already present.
// It reports whether the list changed.
func (p *Prefs) AddPreset(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if slices.Contains(p.presets, name) {
		return false, nil
	}
	p.presets = append(p.presets, name)
	return true, p.save(KeyPresets, p.presets)
}

func (p *Prefs) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := p.kv.Set(key, data); err != nil {
		p.log.Error("saving preference", "key", key, "error", err)
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// SuggestWeight returns the weight to pre-fill for name, in unit: the last
// recorded weight, or fallbackKg when the exercise has no history.
func SuggestWeight(s *Store, name string, unit model.Unit, fallbackKg float64) float64 {
	kg, ok := s.LastRecordedWeight(name)
	if !ok {
		kg = fallbackKg
	}
	return round1(ToDisplay(kg, unit))
}

// Import validates every log in logs, then writes them through Mutate in
// date order, replacing existing days. Nothing is written if any day is
// invalid. Exercises missing an ID, or repeating one, get a fresh ID.
func Import(s *Store, logs map[string]model.DayLog) (int, error) {
	keys := make([]string, 0, len(logs))
	for key := range logs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clean := make([]model.DayLog, len(keys))
	for i, key := range keys {
		dl, err := sanitizeDay(key, logs[key])
		if err != nil {
			return 0, fmt.Errorf("importing %s: %w", key, err)
		}
		clean[i] = dl
	}

	for i, dl := range clean {
		if err := s.Mutate(dl.Date, func(model.DayLog) model.DayLog { return dl }); err != nil {
			return i, fmt.Errorf("importing %s: %w", dl.Date, err)
		}
	}
	return len(clean), nil
}

// sanitizeDay applies the same rules as the interactive operations to an
// imported day: trimmed unique focus tags, named exercises with positive
// sets and reps, and clamped finite weights.
func sanitizeDay(key string, dl model.DayLog) (model.DayLog, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return model.DayLog{}, err
	}

	out := model.EmptyDayLog(DateKey(t))
	out.Done = dl.Done
	out.Note = strings.TrimSpace(dl.Note)
	for _, tag := range dl.Focus {
		tag = strings.TrimSpace(tag)
		if tag != "" && !out.HasFocus(tag) {
			out.Focus = append(out.Focus, tag)
		}
	}

	seen := make(map[string]bool, len(dl.Exercises))
	for _, ex := range dl.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return model.DayLog{}, ErrEmptyName
		}
		if ex.Sets <= 0 || ex.Reps <= 0 {
			return model.DayLog{}, fmt.Errorf("%w: %s", ErrInvalidCount, ex.Name)
		}
		if ex.Weight, err = clampWeight(ex.Weight); err != nil {
			return model.DayLog{}, fmt.Errorf("%w: %s", err, ex.Name)
		}
		ex.ID = strings.TrimSpace(ex.ID)
		if ex.ID == "" || seen[ex.ID] {
			ex.ID = uuid.NewString()
		}
		seen[ex.ID] = true
		ex.Note = strings.TrimSpace(ex.Note)
		out.Exercises = append(out.Exercises, ex)
	}
	return out, nil
}
