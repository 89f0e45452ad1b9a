package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/gymlog"
)

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Toggle whether the day's workout is done",
	Args:  cobra.NoArgs,
	RunE:  runDone,
}

var focusCmd = &cobra.Command{
	Use:   "focus TAG...",
	Short: "Toggle muscle focus tags on a day",
	Long:  "Toggle focus tags. Presets: " + strings.Join(gymlog.MusclePresets, ", ") + ".",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFocus,
}

var noteCmd = &cobra.Command{
	Use:   "note TEXT",
	Short: "Set the day's note (empty clears it)",
	Args:  cobra.ArbitraryArgs,
	RunE:  runNote,
}

func init() {
	rootCmd.AddCommand(doneCmd, focusCmd, noteCmd)
}

func runDone(_ *cobra.Command, _ []string) error {
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
	if err := a.logs.ToggleDone(key); err != nil {
		return err
	}
	if a.logs.Get(key).Done {
		fmt.Printf("  %s marked done\n", key)
	} else {
		fmt.Printf("  %s marked not done\n", key)
	}
	return nil
}

// canonicalFocus maps a tag onto a preset spelling when it matches one.
func canonicalFocus(tag string) string {
	tag = strings.TrimSpace(tag)
	for _, p := range gymlog.MusclePresets {
		if strings.EqualFold(p, tag) {
			return p
		}
	}
	return tag
}

func runFocus(_ *cobra.Command, args []string) error {
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
	for _, arg := range args {
		if err := a.logs.ToggleFocus(key, canonicalFocus(arg)); err != nil {
			return err
		}
	}
	focus := a.logs.Get(key).Focus
	if len(focus) == 0 {
		fmt.Printf("  %s has no focus tags\n", key)
		return nil
	}
	fmt.Printf("  %s focus: %s\n", key, strings.Join(focus, ", "))
	return nil
}

func runNote(_ *cobra.Command, args []string) error {
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
	if err := a.logs.SetNote(key, strings.Join(args, " ")); err != nil {
		return err
	}
	fmt.Printf("  Note saved for %s\n", key)
	return nil
}
