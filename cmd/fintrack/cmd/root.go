// Package cmd provides the fintrack command tree.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
)

// app is the state every subcommand shares once the root pre-run succeeded.
type app struct {
	envFile string
	debug   bool

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal expense tracker",
		Long: `fintrack records daily expenses in a local SQLite database and keeps
a spreadsheet export (and optionally a Google Sheets mirror) in step
with every change.

Example:
  fintrack serve
  fintrack add --name Lunch --amount 12.50 --category "Food & Dining"
  fintrack list --category Travel --from 2024-01-01 --to 2024-01-31
  fintrack stats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file to load (default is .env when present)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newWorkerCmd(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	if err := cli.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg.LogLevel, a.debug, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// backend wires the application for role. The caller must Close it.
func (a *app) backend(ctx context.Context, role backend.Role) (*backend.Backend, error) {
	b, err := backend.New(ctx, a.cfg, role, a.logger)
	if err != nil {
		a.logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		return nil, err
	}
	return b, nil
}

func (a *app) closeBackend(b *backend.Backend) {
	if err := b.Close(); err != nil {
		a.logger.Warn("Backend cleanup failed", log.FieldError, err.Error())
	}
}

func printWarning(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}
