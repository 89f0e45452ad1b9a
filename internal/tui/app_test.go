package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/liftlog/internal/bills"
	"github.com/theirongolddev/liftlog/internal/config"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
)

// testNow is a Tuesday.
var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	kv := store.NewMemory()
	a := NewApp(Deps{
		Logs:   gymlog.Load(kv, nil),
		Prefs:  gymlog.LoadPrefs(kv, nil),
		Bills:  bills.LoadBook(kv, nil),
		Config: config.DefaultConfig(),
		Now:    func() time.Time { return testNow },
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys without running the commands they return.
func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

// pressWrite sends k, runs the write it issues, and feeds back the result.
func pressWrite(t *testing.T, a App, k string) App {
	t.Helper()
	m, cmd := a.Update(keyMsg(k))
	a = m.(App)
	if cmd == nil {
		t.Fatalf("key %q issued no command", k)
	}
	res, ok := cmd().(storeResultMsg)
	if !ok {
		t.Fatalf("key %q did not issue a write", k)
	}
	if res.err != nil {
		t.Fatalf("key %q write failed: %v", k, res.err)
	}
	m, _ = a.Update(res)
	return m.(App)
}

func TestNewAppStartsOnToday(t *testing.T) {
	a := newTestApp(t)
	if got := a.selectedKey(); got != "2026-03-10" {
		t.Fatalf("selected = %s, want 2026-03-10", got)
	}
	if a.month.Day() != 1 || a.month.Month() != time.March {
		t.Fatalf("month = %v, want March 1", a.month)
	}
	if a.setupForm != nil {
		t.Fatal("setup form opened without NeedSetup")
	}
}

func TestCalendarKeysMoveSelection(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"l"}, "2026-03-11"},
		{[]string{"h", "h"}, "2026-03-08"},
		{[]string{"j"}, "2026-03-17"},
		{[]string{"k", "k"}, "2026-02-24"},
		{[]string{"]"}, "2026-04-10"},
		{[]string{"[", "[", "["}, "2025-12-10"},
		{[]string{"l", "l", "t"}, "2026-03-10"},
	}
	for _, tt := range tests {
		a := press(newTestApp(t), tt.keys...)
		if got := a.selectedKey(); got != tt.want {
			t.Errorf("keys %v: selected = %s, want %s", tt.keys, got, tt.want)
		}
		if !a.month.Equal(time.Date(a.selected.Year(), a.selected.Month(), 1, 0, 0, 0, 0, time.Local)) {
			t.Errorf("keys %v: month %v does not contain selection %v", tt.keys, a.month, a.selected)
		}
	}
}

func TestShiftMonthClampsDay(t *testing.T) {
	a := newTestApp(t)
	a.selectDate(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.Local))
	a.shiftMonth(1)
	if got := a.selectedKey(); got != "2026-02-28" {
		t.Fatalf("selected = %s, want 2026-02-28", got)
	}
	a.shiftMonth(1)
	if got := a.selectedKey(); got != "2026-03-28" {
		t.Fatalf("selected = %s, want 2026-03-28", got)
	}
}

func TestSpaceTogglesDone(t *testing.T) {
	a := pressWrite(t, newTestApp(t), " ")
	if !a.logs.Get("2026-03-10").Done {
		t.Fatal("day not marked done")
	}
	if a.flash == "" || a.flashErr {
		t.Fatalf("flash = %q (err %v), want a success message", a.flash, a.flashErr)
	}
	a = pressWrite(t, a, " ")
	if a.logs.Get("2026-03-10").Done {
		t.Fatal("second toggle left day done")
	}
}

func TestEnterOpensDayTab(t *testing.T) {
	a := press(newTestApp(t), "l", "enter")
	if a.activeTab != tabDay {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabDay)
	}
	if got := a.selectedKey(); got != "2026-03-11" {
		t.Fatalf("selected = %s, want 2026-03-11", got)
	}
}

func TestTabKeysCycle(t *testing.T) {
	a := newTestApp(t)
	for _, want := range []int{tabDay, tabBills, tabSettings, tabCalendar} {
		a = press(a, "tab")
		if a.activeTab != want {
			t.Fatalf("activeTab = %d, want %d", a.activeTab, want)
		}
	}
	a = press(a, "b")
	if a.activeTab != tabBills {
		t.Fatalf("activeTab = %d after b, want %d", a.activeTab, tabBills)
	}
}

func TestDayFocusKeysToggleTags(t *testing.T) {
	a := press(newTestApp(t), "d")
	a = pressWrite(t, a, "1")
	a = pressWrite(t, a, "3")
	got := a.logs.Get("2026-03-10").Focus
	if len(got) != 2 || got[0] != gymlog.MusclePresets[0] || got[1] != gymlog.MusclePresets[2] {
		t.Fatalf("focus = %v, want [%s %s]", got, gymlog.MusclePresets[0], gymlog.MusclePresets[2])
	}
	a = pressWrite(t, a, "1")
	if got := a.logs.Get("2026-03-10").Focus; len(got) != 1 {
		t.Fatalf("focus = %v after untoggle, want one tag", got)
	}
}

func TestDayRemoveExercise(t *testing.T) {
	a := press(newTestApp(t), "d")
	for _, name := range []string{"Squat", "Deadlift"} {
		if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: name, Sets: 3, Reps: 5, Weight: 100, Unit: model.UnitKg}); err != nil {
			t.Fatal(err)
		}
	}
	a = press(a, "j")
	a = pressWrite(t, a, "x")
	ex := a.logs.Get("2026-03-10").Exercises
	if len(ex) != 1 || ex[0].Name != "Squat" {
		t.Fatalf("exercises = %+v, want only Squat", ex)
	}
	if a.day.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", a.day.cursor)
	}
}

func TestDayAddFormPrefillsLastWeight(t *testing.T) {
	a := press(newTestApp(t), "d")
	if _, err := a.logs.AddExercise("2026-03-01", gymlog.ExerciseInput{Name: "Bench Press", Sets: 3, Reps: 8, Weight: 62.5, Unit: model.UnitKg}); err != nil {
		t.Fatal(err)
	}
	a.openAddForm("Bench Press")
	if a.day.form == nil || a.day.kind != formAdd {
		t.Fatal("add form not open")
	}
	if got := a.day.vals.Weight; got != "62.5" {
		t.Fatalf("weight = %q, want 62.5", got)
	}
	if a.day.vals.Sets != "3" || a.day.vals.Reps != "10" {
		t.Fatalf("sets/reps = %s/%s, want 3/10", a.day.vals.Sets, a.day.vals.Reps)
	}

	a = press(a, "esc")
	if a.day.form != nil {
		t.Fatal("esc did not close the form")
	}
}

// submitEdit opens the edit form on the first exercise, applies change to
// its values, submits, and runs the write.
func submitEdit(t *testing.T, a App, change func(v *exerciseValues)) App {
	t.Helper()
	ex := a.logs.Get(a.selectedKey()).Exercises[0]
	a.openEditForm(ex)
	change(a.day.vals)
	m, cmd := a.submitDayForm()
	a = m.(App)
	if cmd == nil {
		return a
	}
	res, ok := cmd().(storeResultMsg)
	if !ok {
		t.Fatal("edit did not issue a write")
	}
	if res.err != nil {
		t.Fatalf("edit write failed: %v", res.err)
	}
	m, _ = a.Update(res)
	return m.(App)
}

func TestDayEditKeepsUntouchedWeight(t *testing.T) {
	tests := []struct {
		name string
		unit model.Unit
	}{
		{"kg", model.UnitKg},
		{"lb", model.UnitLb},
	}
	for _, tt := range tests {
		a := press(newTestApp(t), "d")
		if err := a.prefs.SetUnit(tt.unit); err != nil {
			t.Fatal(err)
		}
		if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: "Squat", Sets: 3, Reps: 5, Weight: 62.25, Unit: model.UnitKg}); err != nil {
			t.Fatal(err)
		}
		a = submitEdit(t, a, func(v *exerciseValues) { v.Reps = "8" })

		got := a.logs.Get("2026-03-10").Exercises[0]
		if got.Reps != 8 {
			t.Errorf("%s: reps = %d, want 8", tt.name, got.Reps)
		}
		if got.Weight != 62.25 {
			t.Errorf("%s: weight = %v, want 62.25", tt.name, got.Weight)
		}
		if got.Sets != 3 || got.Name != "Squat" {
			t.Errorf("%s: exercise = %+v, want sets and name unchanged", tt.name, got)
		}
		if a.day.form != nil || a.day.orig != (exerciseValues{}) {
			t.Errorf("%s: edit state not cleared", tt.name)
		}
	}
}

func TestDayEditWeightChangeConverts(t *testing.T) {
	a := press(newTestApp(t), "d")
	if err := a.prefs.SetUnit(model.UnitLb); err != nil {
		t.Fatal(err)
	}
	if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: "Row", Sets: 3, Reps: 10, Weight: 40, Unit: model.UnitKg}); err != nil {
		t.Fatal(err)
	}
	a = submitEdit(t, a, func(v *exerciseValues) { v.Weight = "100" })
	if got := a.logs.Get("2026-03-10").Exercises[0].Weight; got != 45.4 {
		t.Fatalf("weight = %v, want 45.4", got)
	}
}

func TestDayEditWithoutChangesSkipsWrite(t *testing.T) {
	a := press(newTestApp(t), "d")
	if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: "Row", Sets: 3, Reps: 10, Weight: 40.33, Unit: model.UnitKg}); err != nil {
		t.Fatal(err)
	}
	ex := a.logs.Get("2026-03-10").Exercises[0]
	a.openEditForm(ex)
	a.day.vals.Name = " Row "
	if _, cmd := a.submitDayForm(); cmd != nil {
		t.Fatal("unchanged edit issued a write")
	}
	if got := a.logs.Get("2026-03-10").Exercises[0]; got != ex {
		t.Fatalf("exercise = %+v, want %+v", got, ex)
	}
}

func TestDayStepKeys(t *testing.T) {
	a := press(newTestApp(t), "d")
	if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: "Press", Sets: 3, Reps: 5, Weight: 30.25, Unit: model.UnitKg}); err != nil {
		t.Fatal(err)
	}

	a = pressWrite(t, a, "+")
	if got := a.logs.Get("2026-03-10").Exercises[0]; got.Sets != 4 || got.Weight != 30.25 {
		t.Fatalf("after + on sets: %+v, want sets 4 and weight untouched", got)
	}

	a = press(a, "w")
	if a.day.step != gymlog.StepReps {
		t.Fatalf("step = %s, want reps", a.day.step)
	}
	a = pressWrite(t, a, "-")
	if got := a.logs.Get("2026-03-10").Exercises[0].Reps; got != 4 {
		t.Fatalf("reps = %d, want 4", got)
	}

	a = press(a, "w")
	a = pressWrite(t, a, "=")
	if got := a.logs.Get("2026-03-10").Exercises[0].Weight; got != 32.8 {
		t.Fatalf("weight = %v, want 32.8", got)
	}
	if !strings.Contains(a.View(), "weight") {
		t.Fatal("view does not show the step field")
	}

	a = press(a, "w")
	if a.day.step != gymlog.StepSets {
		t.Fatalf("step = %s, want sets after wrapping", a.day.step)
	}
}

func TestDayStepWithoutExercises(t *testing.T) {
	a := press(newTestApp(t), "d")
	if _, cmd := a.Update(keyMsg("+")); cmd != nil {
		t.Fatal("+ on an empty day issued a command")
	}
}

func TestDayNoteInput(t *testing.T) {
	a := press(newTestApp(t), "d", "n")
	if !a.day.noting {
		t.Fatal("n did not open the note input")
	}
	a = press(a, "h", "i")
	a = pressWrite(t, a, "enter")
	if got := a.logs.Get("2026-03-10").Note; got != "hi" {
		t.Fatalf("note = %q, want hi", got)
	}
}

func TestFormValidators(t *testing.T) {
	if err := validateName("  "); err == nil {
		t.Error("blank name accepted")
	}
	if err := validateName("Row"); err != nil {
		t.Errorf("validateName(Row) = %v", err)
	}
	for _, s := range []string{"0", "-1", "x", ""} {
		if err := validateCount(s); err == nil {
			t.Errorf("validateCount(%q) accepted", s)
		}
	}
	if err := validateCount(" 5 "); err != nil {
		t.Errorf("validateCount(5) = %v", err)
	}
	for _, s := range []string{"-2", "abc", "Inf", "+Inf", "-Inf", "NaN", "1e999"} {
		if err := validateWeight(s); err == nil {
			t.Errorf("validateWeight(%q) accepted", s)
		}
	}
	for _, s := range []string{"", "0", "42.5"} {
		if err := validateWeight(s); err != nil {
			t.Errorf("validateWeight(%q) = %v", s, err)
		}
	}
}

func TestBillsTabStatusKeys(t *testing.T) {
	a := press(newTestApp(t), "b")
	list := a.visibleBills()
	if len(list) != len(bills.SampleBills) {
		t.Fatalf("visible = %d bills, want %d", len(list), len(bills.SampleBills))
	}

	// Rent is Done; enter cycles it to Skip.
	a = pressWrite(t, a, "enter")
	if got := a.visibleBills()[0].Status; got != model.BillSkip {
		t.Fatalf("rent status = %s, want Skip", got)
	}

	a = press(a, "j")
	a = pressWrite(t, a, "D")
	if got := a.visibleBills()[1].Status; got != model.BillDone {
		t.Fatalf("utilities status = %s, want Done", got)
	}
}

func TestBillsSearchFilters(t *testing.T) {
	a := press(newTestApp(t), "b", "/")
	if !a.bill.searching {
		t.Fatal("/ did not start search")
	}
	a = press(a, "n", "e", "t", "enter")
	list := a.visibleBills()
	if len(list) != 1 || list[0].Title != "Internet" {
		t.Fatalf("visible = %+v, want only Internet", list)
	}
	a = press(a, "esc")
	if len(a.visibleBills()) != len(bills.SampleBills) {
		t.Fatal("esc did not clear the query")
	}
}

func TestSettingsToggleWeekStrip(t *testing.T) {
	a := press(newTestApp(t), "s", "j", "j", "j", "enter")
	if a.cfg.TUI.ShowWeekStrip {
		t.Fatal("week strip still on")
	}
	if a.settings.saveErr != nil {
		t.Fatalf("save failed: %v", a.settings.saveErr)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TUI.ShowWeekStrip {
		t.Fatal("saved config still shows the week strip")
	}
}

func TestSettingsEditDefaultWeight(t *testing.T) {
	a := press(newTestApp(t), "s", "j", "j", "enter")
	if !a.settings.editing {
		t.Fatal("enter on default weight did not start editing")
	}
	a.settings.input.SetValue("bad")
	a = press(a, "enter")
	if a.settings.saveErr == nil || !a.settings.editing {
		t.Fatal("invalid weight accepted")
	}
	a.settings.input.SetValue("32.5")
	a = press(a, "enter")
	if a.settings.editing || a.cfg.General.DefaultWeightKg != 32.5 {
		t.Fatalf("default weight = %v, editing %v", a.cfg.General.DefaultWeightKg, a.settings.editing)
	}
}

func TestApplySetup(t *testing.T) {
	a := newTestApp(t)
	cfg := config.DefaultConfig()
	v := &setupValues{Unit: "lb", Theme: "tokyo-night", Weight: "25"}
	if err := applySetup(v, &cfg, a.prefs); err != nil {
		t.Fatalf("applySetup: %v", err)
	}
	if a.prefs.Unit() != model.UnitLb {
		t.Fatalf("unit = %s, want lb", a.prefs.Unit())
	}
	if !config.Exists() {
		t.Fatal("config not written")
	}
	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.General.DefaultWeightKg != 25 || saved.Appearance.Theme != "tokyo-night" {
		t.Fatalf("saved = %+v", saved)
	}

	if err := applySetup(&setupValues{Unit: "lb", Theme: "tokyo-night", Weight: "-1"}, &cfg, a.prefs); err == nil {
		t.Fatal("negative weight accepted")
	}
	if err := applySetup(&setupValues{Unit: "lb", Theme: "tokyo-night", Weight: "Inf"}, &cfg, a.prefs); err == nil {
		t.Fatal("infinite weight accepted")
	}
}

func TestSetupEscSkips(t *testing.T) {
	a := newTestApp(t)
	a.setupVals = newSetupValues(a.cfg, a.prefs.Unit())
	a.setupForm = newSetupForm(a.setupVals)
	a = press(a, "esc")
	if a.setupForm != nil {
		t.Fatal("esc left the setup form open")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.logs.AddExercise("2026-03-10", gymlog.ExerciseInput{Name: "Squat", Sets: 5, Reps: 5, Weight: 100, Unit: model.UnitKg}); err != nil {
		t.Fatal(err)
	}
	want := []string{"March 2026", "Squat", "September 2025", "Default weight"}
	for tab := range want {
		a.activeTab = tab
		out := a.View()
		if !strings.Contains(out, want[tab]) {
			t.Errorf("tab %d view missing %q", tab, want[tab])
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Fatalf("view = %q, want narrow warning", out)
	}
}

func TestTickRollsToday(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tickMsg(testNow.Add(24 * time.Hour)))
	if got := m.(App).today; got.Day() != 11 {
		t.Fatalf("today = %v, want March 11", got)
	}
}
