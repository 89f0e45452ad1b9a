package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/tui/components"
	"github.com/theirongolddev/liftlog/internal/tui/theme"
)

type formKind int

const (
	formAdd formKind = iota
	formEdit
	formPickPreset
	formNewPreset
)

// exerciseValues backs the huh exercise forms. It lives on the heap so the
// form keeps writing to the same fields across App copies.
type exerciseValues struct {
	Preset string
	Name   string
	Sets   string
	Reps   string
	Weight string
	Note   string
}

// dayState tracks the Day tab.
type dayState struct {
	cursor int
	form   *huh.Form
	kind   formKind
	vals   *exerciseValues
	editID string
	orig   exerciseValues // edit form contents as opened
	noting bool
	note   textinput.Model
	step   gymlog.StepField
}

func newDayState() dayState {
	return dayState{note: newNoteInput()}
}

func newNoteInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "How did it go?"
	ti.CharLimit = 280
	ti.Width = 60
	return ti
}

func (d *dayState) move(delta, n int) {
	d.cursor += delta
	d.clampCursor(n)
}

func (d *dayState) clampCursor(n int) {
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

var errWeight = errors.New("weight must be a number ≥ 0")

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return gymlog.ErrEmptyName
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return gymlog.ErrInvalidCount
	}
	return nil
}

func validateWeight(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return errWeight
	}
	return nil
}

func newExerciseForm(v *exerciseValues, unit model.Unit) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise").Placeholder("Bench Press").Value(&v.Name).Validate(validateName),
			huh.NewInput().Title("Sets").Value(&v.Sets).Validate(validateCount),
			huh.NewInput().Title("Reps").Value(&v.Reps).Validate(validateCount),
			huh.NewInput().Title("Weight ("+string(unit)+")").Value(&v.Weight).Validate(validateWeight),
			huh.NewInput().Title("Note").Value(&v.Note),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

func newPresetPicker(v *exerciseValues, presets []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preset").
				Options(huh.NewOptions(presets...)...).
				Value(&v.Preset),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

func newPresetInput(v *exerciseValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New preset").Value(&v.Preset).Validate(validateName),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

func (a *App) openForm(kind formKind, form *huh.Form, vals *exerciseValues) tea.Cmd {
	a.day.kind = kind
	a.day.vals = vals
	a.day.form = form
	if a.width > 0 {
		a.day.form = a.day.form.WithWidth(min(a.width, 70))
	}
	return a.day.form.Init()
}

// openAddForm pre-fills the add form. An empty name leaves the weight at the
// configured default.
func (a *App) openAddForm(name string) tea.Cmd {
	unit := a.prefs.Unit()
	vals := &exerciseValues{
		Name:   name,
		Sets:   strconv.Itoa(gymlog.DefaultSets),
		Reps:   strconv.Itoa(gymlog.DefaultReps),
		Weight: cli.FormatDecimal(gymlog.SuggestWeight(a.logs, name, unit, a.cfg.General.DefaultWeightKg)),
	}
	return a.openForm(formAdd, newExerciseForm(vals, unit), vals)
}

func (a *App) openEditForm(ex model.Exercise) tea.Cmd {
	unit := a.prefs.Unit()
	vals := &exerciseValues{
		Name:   ex.Name,
		Sets:   strconv.Itoa(ex.Sets),
		Reps:   strconv.Itoa(ex.Reps),
		Weight: cli.FormatDecimal(gymlog.ToDisplay(ex.Weight, unit)),
		Note:   ex.Note,
	}
	a.day.editID = ex.ID
	a.day.orig = *vals
	return a.openForm(formEdit, newExerciseForm(vals, unit), vals)
}

func (a *App) closeForm() {
	a.day.form = nil
	a.day.vals = nil
	a.day.editID = ""
	a.day.orig = exerciseValues{}
}

// editPatch returns a patch of only the fields the user changed. Untouched weights are
// left alone so the display rounding never rewrites the stored kg value.
func editPatch(orig, cur exerciseValues) gymlog.ExercisePatch {
	var p gymlog.ExercisePatch
	changed := func(a, b string) bool { return strings.TrimSpace(a) != strings.TrimSpace(b) }
	if changed(orig.Name, cur.Name) {
		name := cur.Name
		p.Name = &name
	}
	if changed(orig.Sets, cur.Sets) {
		n := atoi(cur.Sets)
		p.Sets = &n
	}
	if changed(orig.Reps, cur.Reps) {
		n := atoi(cur.Reps)
		p.Reps = &n
	}
	if changed(orig.Weight, cur.Weight) {
		w := atof(cur.Weight)
		p.Weight = &w
	}
	if changed(orig.Note, cur.Note) {
		note := cur.Note
		p.Note = &note
	}
	return p
}

func (a App) stepCmd(dl model.DayLog, dir int) tea.Cmd {
	if len(dl.Exercises) == 0 {
		return nil
	}
	a.day.clampCursor(len(dl.Exercises))
	ex := dl.Exercises[a.day.cursor]
	date, field, unit := a.selectedKey(), a.day.step, a.prefs.Unit()
	return writeCmd(fmt.Sprintf("%s %s", ex.Name, field), func() error {
		return a.logs.StepExercise(date, ex.ID, field, dir, unit)
	})
}

func (a App) toggleDoneCmd() tea.Cmd {
	key := a.selectedKey()
	return writeCmd("Toggled done for "+key, func() error { return a.logs.ToggleDone(key) })
}

func (a App) updateDayKeys(key string) (App, tea.Cmd, bool) {
	dl := a.logs.Get(a.selectedKey())
	date := a.selectedKey()

	switch key {
	case " ":
		return a, a.toggleDoneCmd(), true
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i >= len(gymlog.MusclePresets) {
			return a, nil, true
		}
		tag := gymlog.MusclePresets[i]
		return a, writeCmd("Toggled "+tag, func() error { return a.logs.ToggleFocus(date, tag) }), true
	case "a":
		return a, a.openAddForm(""), true
	case "p":
		presets := a.prefs.Presets()
		if len(presets) == 0 {
			a.setFlash("No presets yet. Press P to add one.", true)
			return a, nil, true
		}
		vals := &exerciseValues{}
		return a, a.openForm(formPickPreset, newPresetPicker(vals, presets), vals), true
	case "P":
		vals := &exerciseValues{}
		return a, a.openForm(formNewPreset, newPresetInput(vals), vals), true
	case "e":
		if len(dl.Exercises) == 0 {
			return a, nil, true
		}
		a.day.clampCursor(len(dl.Exercises))
		return a, a.openEditForm(dl.Exercises[a.day.cursor]), true
	case "x":
		if len(dl.Exercises) == 0 {
			return a, nil, true
		}
		a.day.clampCursor(len(dl.Exercises))
		ex := dl.Exercises[a.day.cursor]
		return a, writeCmd("Removed "+ex.Name, func() error { return a.logs.RemoveExercise(date, ex.ID) }), true
	case "n":
		a.day.noting = true
		a.day.note = newNoteInput()
		a.day.note.SetValue(dl.Note)
		a.day.note.Focus()
		return a, textinput.Blink, true
	case "+", "=":
		return a, a.stepCmd(dl, 1), true
	case "-":
		return a, a.stepCmd(dl, -1), true
	case "w":
		a.day.step = a.day.step.Next()
	case "u":
		return a, writeCmd("Switched unit", func() error {
			_, err := a.prefs.ToggleUnit()
			return err
		}), true
	case "j", "down":
		a.day.move(1, len(dl.Exercises))
	case "k", "up":
		a.day.move(-1, len(dl.Exercises))
	case "h", "left":
		a.selectDate(a.selected.AddDate(0, 0, -1))
	case "l", "right":
		a.selectDate(a.selected.AddDate(0, 0, 1))
	case "t":
		a.selectDate(a.today)
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateDayForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.closeForm()
		return a, nil
	}

	form, cmd := a.day.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.day.form = f
	}

	switch a.day.form.State {
	case huh.StateCompleted:
		return a.submitDayForm()
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a App) submitDayForm() (tea.Model, tea.Cmd) {
	vals, kind, editID, orig := a.day.vals, a.day.kind, a.day.editID, a.day.orig
	a.closeForm()
	date := a.selectedKey()
	unit := a.prefs.Unit()

	switch kind {
	case formPickPreset:
		return a, a.openAddForm(vals.Preset)

	case formNewPreset:
		name := strings.TrimSpace(vals.Preset)
		if _, err := a.prefs.AddPreset(name); err != nil {
			a.setFlash("Adding preset failed: "+err.Error(), true)
			return a, nil
		}
		return a, a.openAddForm(name)

	case formAdd:
		if validateName(vals.Name) != nil {
			// Reopen with the name field focused.
			return a, a.openForm(formAdd, newExerciseForm(vals, unit), vals)
		}
		in := gymlog.ExerciseInput{
			Name:   vals.Name,
			Sets:   atoi(vals.Sets),
			Reps:   atoi(vals.Reps),
			Weight: atof(vals.Weight),
			Note:   vals.Note,
			Unit:   unit,
		}
		return a, writeCmd("Added "+strings.TrimSpace(vals.Name), func() error {
			_, err := a.logs.AddExercise(date, in)
			return err
		})

	case formEdit:
		patch := editPatch(orig, *vals)
		if patch == (gymlog.ExercisePatch{}) {
			a.setFlash("No changes", false)
			return a, nil
		}
		return a, writeCmd("Updated "+strings.TrimSpace(vals.Name), func() error {
			return a.logs.EditExercise(date, editID, patch, unit)
		})
	}
	return a, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func (a App) updateNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.day.noting = false
		date, note := a.selectedKey(), a.day.note.Value()
		return a, writeCmd("Saved note", func() error { return a.logs.SetNote(date, note) })
	case "esc":
		a.day.noting = false
		return a, nil
	}

	var cmd tea.Cmd
	a.day.note, cmd = a.day.note.Update(msg)
	return a, cmd
}

func (a App) renderDayTab(cw int) string {
	t := theme.Active
	dl := a.logs.Get(a.selectedKey())
	unit := a.prefs.Unit()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.DoneBright).Background(t.Surface).Bold(true)
	chipOn := lipgloss.NewStyle().Foreground(t.Background).Background(t.Focus).Bold(true)
	chipOff := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var head strings.Builder
	if dl.Done {
		head.WriteString(doneStyle.Render("✓ Done"))
	} else {
		head.WriteString(labelStyle.Render("○ Not done"))
	}
	head.WriteString(labelStyle.Render("   Volume: ") + valueStyle.Render(cli.FormatVolume(dl.TotalVolume(), unit)))
	head.WriteString(labelStyle.Render("   Unit: ") + valueStyle.Render(string(unit)))
	head.WriteString("\n\n")

	chips := make([]string, 0, len(gymlog.MusclePresets))
	for i, tag := range gymlog.MusclePresets {
		label := fmt.Sprintf(" %d %s ", i+1, tag)
		if dl.HasFocus(tag) {
			chips = append(chips, chipOn.Render(label))
		} else {
			chips = append(chips, chipOff.Render(label))
		}
	}
	head.WriteString(lipgloss.NewStyle().Width(components.CardInnerWidth(cw)).Background(t.Surface).
		Render(strings.Join(chips, space)))
	for _, tag := range dl.Focus {
		if !isMusclePreset(tag) {
			head.WriteString(space + chipOn.Render(" "+tag+" "))
		}
	}

	if a.day.noting {
		head.WriteString("\n\n" + labelStyle.Render("Note: ") + a.day.note.View())
	} else if dl.Note != "" {
		head.WriteString("\n\n" + labelStyle.Render("Note: ") + valueStyle.Render(dl.Note))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(a.selected.Format("Monday, January 2 2006"), head.String(), cw))
	b.WriteString("\n")

	if a.day.form != nil {
		b.WriteString(components.FocusedCard(a.formTitle(), a.day.form.View(), cw))
		return b.String()
	}

	b.WriteString(components.ContentCard("Exercises", a.renderExerciseList(dl, unit, cw), cw))
	return b.String()
}

func (a App) formTitle() string {
	switch a.day.kind {
	case formEdit:
		return "Edit exercise"
	case formPickPreset:
		return "Add from preset"
	case formNewPreset:
		return "New preset"
	default:
		return "Add exercise"
	}
}

func isMusclePreset(tag string) bool {
	for _, p := range gymlog.MusclePresets {
		if p == tag {
			return true
		}
	}
	return false
}

func (a App) renderExerciseList(dl model.DayLog, unit model.Unit, cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	stepStyle := lipgloss.NewStyle().Foreground(t.Focus).Background(t.Surface).Bold(true)

	if len(dl.Exercises) == 0 {
		return mutedStyle.Render("Nothing logged. Press a to add, p to pick a preset.")
	}

	nameW := max(inner-40, 12)
	format := fmt.Sprintf("%%-%ds %%4s %%4s %%10s  %%s", nameW)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(format, "Exercise", "Sets", "Reps", "Weight", "Note")))
	for i, ex := range dl.Exercises {
		line := fmt.Sprintf(format,
			truncStr(ex.Name, nameW),
			strconv.Itoa(ex.Sets),
			strconv.Itoa(ex.Reps),
			cli.FormatWeight(ex.Weight, unit),
			truncStr(ex.Note, max(inner-nameW-24, 0)),
		)
		b.WriteString("\n")
		if i == a.day.cursor {
			b.WriteString(selStyle.Width(inner).Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("[+/-] step ") + stepStyle.Render(a.day.step.String()) + mutedStyle.Render("  [w] next field"))
	return b.String()
}
