package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/gymlog"
)

var unitCmd = &cobra.Command{
	Use:       "unit [kg|lb]",
	Short:     "Show or set the display unit",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"kg", "lb"},
	RunE:      runUnit,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List exercise presets with suggested weights",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

var presetsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add an exercise preset",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPresetsAdd,
}

func init() {
	presetsCmd.AddCommand(presetsAddCmd)
	rootCmd.AddCommand(unitCmd, presetsCmd)
}

func runUnit(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		fmt.Printf("  Display unit: %s\n", a.prefs.Unit())
		return nil
	}

	u, err := gymlog.ParseUnit(args[0])
	if err != nil {
		return err
	}
	if err := a.prefs.SetUnit(u); err != nil {
		return err
	}
	fmt.Printf("  Display unit set to %s\n", u)
	return nil
}

func runPresets(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	unit := a.prefs.Unit()
	presets := a.prefs.Presets()
	rows := make([][]string, 0, len(presets))
	for _, name := range presets {
		last := "-"
		if kg, ok := a.logs.LastRecordedWeight(name); ok {
			last = cli.FormatWeight(kg, unit)
		}
		suggested := gymlog.SuggestWeight(a.logs, name, unit, a.cfg.General.DefaultWeightKg)
		rows = append(rows, []string{name, last, cli.FormatDecimal(suggested) + " " + string(unit)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Exercise presets",
		Headers: []string{"Exercise", "Last", "Suggested"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderNote("Focus tags: " + strings.Join(gymlog.MusclePresets, ", ")))
	fmt.Println()
	return nil
}

func runPresetsAdd(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name := strings.Join(args, " ")
	added, err := a.prefs.AddPreset(name)
	if err != nil {
		return userError(err)
	}
	if !added {
		fmt.Printf("  %q is already a preset\n", strings.TrimSpace(name))
		return nil
	}
	fmt.Printf("  Added preset %q\n", strings.TrimSpace(name))
	return nil
}
