package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/gymlog"
)

var (
	flagSets   int
	flagReps   int
	flagWeight float64
	flagNote   string

	editName   string
	editSets   int
	editReps   int
	editWeight float64
	editNote   string
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Log an exercise (weight in the display unit)",
	Long: "Log an exercise on --date. Sets and reps default to 3x10; weight defaults to\n" +
		"the last weight recorded for the same exercise, or the configured default.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change fields of a logged exercise",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove"},
	Short:   "Remove a logged exercise",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var lastCmd = &cobra.Command{
	Use:   "last NAME",
	Short: "Show the most recent weight for an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLast,
}

func init() {
	addCmd.Flags().IntVar(&flagSets, "sets", gymlog.DefaultSets, "Number of sets")
	addCmd.Flags().IntVar(&flagReps, "reps", gymlog.DefaultReps, "Reps per set")
	addCmd.Flags().Float64VarP(&flagWeight, "weight", "w", 0, "Weight in the display unit")
	addCmd.Flags().StringVar(&flagNote, "note", "", "Free-form note")

	editCmd.Flags().StringVar(&editName, "name", "", "New name")
	editCmd.Flags().IntVar(&editSets, "sets", 0, "New set count")
	editCmd.Flags().IntVar(&editReps, "reps", 0, "New rep count")
	editCmd.Flags().Float64VarP(&editWeight, "weight", "w", 0, "New weight in the display unit")
	editCmd.Flags().StringVar(&editNote, "note", "", "New note")

	rootCmd.AddCommand(addCmd, editCmd, rmCmd, lastCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	unit := a.prefs.Unit()
	weight := flagWeight
	if !cmd.Flags().Changed("weight") {
		weight = gymlog.SuggestWeight(a.logs, name, unit, a.cfg.General.DefaultWeightKg)
	}

	ex, err := a.logs.AddExercise(gymlog.DateKey(date), gymlog.ExerciseInput{
		Name:   name,
		Sets:   flagSets,
		Reps:   flagReps,
		Weight: weight,
		Note:   flagNote,
		Unit:   unit,
	})
	if err != nil {
		return userError(err)
	}

	fmt.Printf("  Added %s %dx%d @ %s on %s (id %s)\n",
		ex.Name, ex.Sets, ex.Reps, cli.FormatWeight(ex.Weight, unit), gymlog.DateKey(date), shortID(ex.ID))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key := gymlog.DateKey(date)
	id, err := resolveExerciseID(a.logs.Get(key), args[0])
	if err != nil {
		return err
	}

	var patch gymlog.ExercisePatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &editName
	}
	if flags.Changed("sets") {
		patch.Sets = &editSets
	}
	if flags.Changed("reps") {
		patch.Reps = &editReps
	}
	if flags.Changed("weight") {
		patch.Weight = &editWeight
	}
	if flags.Changed("note") {
		patch.Note = &editNote
	}
	if patch == (gymlog.ExercisePatch{}) {
		return errors.New("nothing to change: pass --name, --sets, --reps, --weight, or --note")
	}

	if err := a.logs.EditExercise(key, id, patch, a.prefs.Unit()); err != nil {
		return userError(err)
	}
	fmt.Printf("  Updated %s on %s\n", shortID(id), key)
	return nil
}

func runRemove(_ *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key := gymlog.DateKey(date)
	id, err := resolveExerciseID(a.logs.Get(key), args[0])
	if err != nil {
		return err
	}
	if err := a.logs.RemoveExercise(key, id); err != nil {
		return err
	}
	fmt.Printf("  Removed %s from %s\n", shortID(id), key)
	return nil
}

func runLast(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	kg, ok := a.logs.LastRecordedWeight(name)
	if !ok {
		fmt.Printf("  No history for %q. Default: %s\n", name, cli.FormatWeight(a.cfg.General.DefaultWeightKg, a.prefs.Unit()))
		return nil
	}
	fmt.Printf("  %s: %s\n", name, cli.FormatWeight(kg, a.prefs.Unit()))
	return nil
}
