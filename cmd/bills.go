package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/liftlog/internal/bills"
	"github.com/theirongolddev/liftlog/internal/cli"
)

var (
	flagMonth  string
	flagSearch string
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Monthly bills and how much is paid",
	Args:  cobra.NoArgs,
	RunE:  runBills,
}

var billsSetCmd = &cobra.Command{
	Use:   "set ID STATUS",
	Short: "Set a bill's status (Done, Process, Skip)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBillsSet,
}

var billsAddCmd = &cobra.Command{
	Use:   "add TITLE DUE AMOUNT",
	Short: "Add a bill due on DUE (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE:  runBillsAdd,
}

var billsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a bill",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsRemove,
}

func init() {
	billsCmd.Flags().StringVar(&flagMonth, "month", "", "Month to show, YYYY-MM (default newest with bills)")
	billsCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Case-insensitive title filter")
	billsCmd.AddCommand(billsSetCmd, billsAddCmd, billsRmCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	all := a.bills.All()
	month := flagMonth
	if month == "" {
		if months := bills.Months(all); len(months) > 0 {
			month = months[0]
		}
	}
	list := bills.Filter(all, month, flagSearch)
	sum := bills.Summarize(list)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILLS  " + bills.MonthLabel(month)))
	fmt.Println()

	if len(list) == 0 {
		fmt.Println("  No bills match.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(list)+2)
	for _, b := range list {
		rows = append(rows, []string{b.ID, b.Title, b.DueDate, string(b.Status), cli.FormatMoney(b.Amount)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", "", strconv.Itoa(sum.Count) + " bills", cli.FormatMoney(sum.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Title", "Due", "Status", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))
	fmt.Printf("  Paid %s  Remaining %s\n", cli.FormatMoney(sum.Done), cli.FormatMoney(sum.Remaining))
	fmt.Printf("  %s\n", cli.RenderProgressBar(sum.Progress, 30))
	fmt.Println()
	return nil
}

func runBillsSet(_ *cobra.Command, args []string) error {
	status, err := bills.ParseStatus(args[1])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.bills.SetStatus(args[0], status); err != nil {
		return err
	}
	fmt.Printf("  Bill %s is now %s\n", args[0], status)
	return nil
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[2])
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.bills.Add(args[0], args[1], amount)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s due %s, id %s)\n", b.Title, cli.FormatMoney(b.Amount), b.DueDate, b.ID)
	return nil
}

func runBillsRemove(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.bills.Remove(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Removed bill %s\n", args[0])
	return nil
}
