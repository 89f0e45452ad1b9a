package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/calendar"
	"github.com/theirongolddev/liftlog/internal/cli"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Month grid of workout days",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCalendar,
}

var weekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "Sunday-to-Saturday summary of a week",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(weekCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	month, err := targetDate()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		month, err = time.ParseInLocation("2006-01", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid month %q (want YYYY-MM)", args[0])
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cells := calendar.Build(month, a.logs)
	monthLogs := a.logs.MonthLogs(month.Year(), month.Month())

	done := 0
	for _, dl := range monthLogs {
		if dl.Done {
			done++
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(month.Format("January 2006"))))
	fmt.Println()
	fmt.Print(cli.RenderCalendar(cells, time.Now()))
	fmt.Println()
	fmt.Println(cli.RenderNote(fmt.Sprintf("%d logged, %d done  (✓ done, • logged)", len(monthLogs), done)))
	fmt.Println()
	return nil
}

func runWeek(_ *cobra.Command, args []string) error {
	anchor, err := targetDate()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if anchor, err = parseDay(args[0]); err != nil {
			return err
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	unit := a.prefs.Unit()
	cells := calendar.Week(anchor, a.logs)

	rows := make([][]string, 0, len(cells))
	volumes := make([]float64, 0, len(cells))
	for _, c := range cells {
		dl := a.logs.Get(c.Key)
		volumes = append(volumes, dl.TotalVolume())

		done := ""
		if c.Done {
			done = "✓"
		}
		rows = append(rows, []string{
			c.Key,
			cli.FormatDayOfWeek(int(c.Date.Weekday())),
			done,
			cli.FormatFocus(c.Focus, c.FocusOverflow),
			strconv.Itoa(c.Exercises),
			cli.FormatVolume(dl.TotalVolume(), unit),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEEK OF " + cells[0].Date.Format("Jan 2 2006")))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Date", "Day", "Done", "Focus", "Exercises", "Volume"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Println(cli.RenderNote("Volume " + cli.RenderSparkline(volumes)))
	fmt.Println()
	return nil
}
