package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Rewrite the exports from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend(cmd.Context(), backend.RoleApp)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			if err := b.Service.Export(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", strings.Join(b.Projector.Sinks(), ", "))
			return nil
		},
	}
}
