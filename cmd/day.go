package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/cli"
	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Show the workout log for a day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

// shortIDLen is how much of an exercise UUID the tables show.
const shortIDLen = 8

func runDay(_ *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if date, err = parseDay(args[0]); err != nil {
			return err
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	printDay(date, a.logs.Get(gymlog.DateKey(date)), a.prefs.Unit())
	return nil
}

func printDay(date time.Time, dl model.DayLog, unit model.Unit) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(date.Format("Monday, January 2 2006"))))
	fmt.Println()

	status := "not done"
	if dl.Done {
		status = "done ✓"
	}
	fmt.Printf("  Status: %s\n", status)
	fmt.Printf("  Focus:  %s\n", cli.FormatFocus(dl.Focus, 0))
	if dl.Note != "" {
		fmt.Printf("  Note:   %s\n", dl.Note)
	}
	fmt.Println()

	if len(dl.Exercises) == 0 {
		fmt.Println("  No exercises logged. Add one with `liftlog add NAME`.")
		fmt.Println()
		return
	}

	rows := make([][]string, 0, len(dl.Exercises))
	for _, ex := range dl.Exercises {
		rows = append(rows, []string{
			shortID(ex.ID),
			ex.Name,
			strconv.Itoa(ex.Sets),
			strconv.Itoa(ex.Reps),
			cli.FormatWeight(ex.Weight, unit),
			ex.Note,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Exercise", "Sets", "Reps", "Weight", "Note"},
		Rows:     rows,
		LeftCols: 2,
	}))
	fmt.Println(cli.RenderNote("Volume: " + cli.FormatVolume(dl.TotalVolume(), unit)))
	fmt.Println()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// resolveExerciseID expands a unique ID prefix on dl to the full ID.
func resolveExerciseID(dl model.DayLog, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	var match string
	for _, ex := range dl.Exercises {
		if prefix == "" || !strings.HasPrefix(ex.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("exercise ID %q is ambiguous on %s", prefix, dl.Date)
		}
		match = ex.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q on %s", gymlog.ErrExerciseNotFound, prefix, dl.Date)
	}
	return match, nil
}

// userError rewrites sentinel errors into hints for the command line.
func userError(err error) error {
	switch {
	case errors.Is(err, gymlog.ErrEmptyName):
		return errors.New("exercise name must not be empty")
	case errors.Is(err, gymlog.ErrInvalidCount):
		return errors.New("sets and reps must be positive")
	}
	return err
}
