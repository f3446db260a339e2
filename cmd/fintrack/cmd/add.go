package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
)

func newAddCmd(a *app) *cobra.Command {
	var form apphttp.ExpenseForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense with the same validation as the web form.

Example:
  fintrack add --name Lunch --amount 12.50
  fintrack add --date 2024-01-05 --category Travel --name Train --amount 42 --comment "to Pune"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := apphttp.ParseExpenseForm(url.Values{
				"date":     {form.Date},
				"category": {form.Category},
				"name":     {form.Name},
				"amount":   {form.Amount},
				"comment":  {form.Comment},
			}).Expense()
			if err != nil {
				return err
			}

			b, err := a.backend(cmd.Context(), backend.RoleApp)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			receipt, err := b.Service.CreateExpense(cmd.Context(), e)
			if err != nil {
				return err
			}
			e.ID = receipt.ID
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", e.ID, e.Label(a.cfg.CurrencySymbol))
			if receipt.ExportErr != nil {
				printWarning(cmd, "export not updated: %v", receipt.ExportErr)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Date, "date", "", "expense date as YYYY-MM-DD (default today)")
	f.StringVar(&form.Category, "category", string(core.DefaultCategory()), "expense category")
	f.StringVar(&form.Name, "name", "", "what the money was spent on")
	f.StringVar(&form.Amount, "amount", "", "amount, greater than 0")
	f.StringVar(&form.Comment, "comment", "", "optional note")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
