package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/core"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Display spending totals",
		Long: `Display the total, average and number of expenses, followed by
the total for each category, largest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend(cmd.Context(), backend.RoleApp)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			sum, _, err := b.Service.Summary(cmd.Context())
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), sum, a.cfg.CurrencySymbol)
			return nil
		},
	}
}

func writeSummary(out io.Writer, sum core.Summary, symbol string) {
	if sum.Count == 0 {
		fmt.Fprintln(out, "No expenses recorded yet.")
		return
	}
	average := "no data"
	if sum.HasAverage {
		average = sum.Average.Format(symbol)
	}

	fmt.Fprintln(out, "=== Expense Statistics ===")
	fmt.Fprintf(out, "Total:   %s\n", sum.Total.Format(symbol))
	fmt.Fprintf(out, "Average: %s\n", average)
	fmt.Fprintf(out, "Count:   %d\n", sum.Count)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "By category:")
	for _, ca := range sum.ByCategory {
		fmt.Fprintf(out, "  %-20s %s\n", ca.Category, ca.Amount.Format(symbol))
	}
}
