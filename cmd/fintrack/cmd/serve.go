package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Run the HTTP server for the entry form, dashboard and browse views.

The export is refreshed once on start-up so it matches the database even
if it was edited or removed while the server was down.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := cli.SignalContext(parent)
	defer stop()

	b, err := a.backend(ctx, backend.RoleApp)
	if err != nil {
		return err
	}
	defer a.closeBackend(b)

	if err := b.Service.Export(ctx); err != nil {
		a.logger.Warn("Startup export failed", log.FieldError, err.Error(), log.FieldErrorType, log.ErrorType(err))
	}

	srv, err := apphttp.NewServer(a.cfg.Addr(), b.Service, apphttp.Options{
		CurrencySymbol: a.cfg.CurrencySymbol,
		Logger:         a.logger.WithComponent(log.ComponentHTTP),
	})
	if err != nil {
		return err
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting fintrack server", "addr", srv.Addr, "sinks", b.Projector.Sinks())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("Server error", log.FieldError, err.Error())
		return err
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}
