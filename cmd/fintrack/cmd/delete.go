package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	apphttp "fintrack/internal/http"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense by id",
		Long: `Delete the expense with the given id. Deleting an id that does not
exist succeeds and leaves the records unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apphttp.ParseID(url.Values{"id": {args[0]}})
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}

			b, err := a.backend(cmd.Context(), backend.RoleApp)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			receipt, err := b.Service.DeleteExpense(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			if receipt.ExportErr != nil {
				printWarning(cmd, "export not updated: %v", receipt.ExportErr)
			}
			return nil
		},
	}
}
