package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

func newWorkerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Mirror changes to Google Sheets from AMQP events",
		Long: `Consume expense events from AMQP and rewrite the Google Sheets mirror
after each burst of changes. Use with GOOGLE_SYNC_MODE=worker so the web
server does not call the Sheets API on the request path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()

			b, err := a.backend(ctx, backend.RoleWorker)
			if err != nil {
				return err
			}
			defer a.closeBackend(b)

			wlog := a.logger.WithComponent(log.ComponentWorker)
			wlog.Info("Starting fintrack worker", "sinks", b.Projector.Sinks())

			err = worker.NewExportWorker(b.Projector, b.Events, wlog.Logger).Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				wlog.Error("Message consumption failed", log.FieldError, err.Error())
				return err
			}
			wlog.Info("Worker shutdown complete")
			return nil
		},
	}
}
