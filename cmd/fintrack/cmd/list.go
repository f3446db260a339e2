package cmd

import (
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
)

func newListCmd(a *app) *cobra.Command {
	var (
		categories []string
		from, to   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Long: `List recorded expenses, optionally filtered.

Categories combine as a set; the date range applies only when both
--from and --to are given and includes both ends.

Example:
  fintrack list --category Travel --category Groceries
  fintrack list --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := apphttp.ParseFilter(url.Values{
				"category": categories,
				"from":     {from},
				"to":       {to},
			})

			b, err := a.backend(cmd.Context(), backend.RoleApp)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			records, err := b.Service.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}
			return writeExpenses(cmd.OutOrStdout(), filter.Apply(records), a.cfg.CurrencySymbol)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&categories, "category", nil, "category to include (repeatable)")
	f.StringVar(&from, "from", "", "first date of the range, YYYY-MM-DD")
	f.StringVar(&to, "to", "", "last date of the range, YYYY-MM-DD")
	return cmd
}

func writeExpenses(out io.Writer, records []core.Expense, symbol string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No expenses found.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tNAME\tAMOUNT\tCOMMENT")
	for _, e := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Category, e.Name, e.Amount.Format(symbol), e.Comment)
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\t\n", core.Total(records).Format(symbol))
	return tw.Flush()
}
