// Package backend assembles the record store, exports, event client and
// expense service from configuration.
package backend

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/export"
	gsheet "fintrack/internal/export/google"
	"fintrack/internal/export/xlsx"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// Role selects which exports a process owns.
type Role int

const (
	// RoleApp is the server and the one-shot CLI commands. It always writes
	// the workbook, and the Sheets mirror too unless the worker owns it.
	RoleApp Role = iota
	// RoleWorker writes only the Sheets mirror, driven by AMQP events.
	RoleWorker
)

// Backend is the wired application. Events is nil when AMQP is disabled.
type Backend struct {
	Repo      *storage.SQLiteRepository
	Projector *export.Projector
	Service   *services.ExpenseService
	Events    *amqp.Client

	cleanup []func() error
}

// Close releases the event client, if any.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.cleanup) - 1; i >= 0; i-- {
		if err := b.cleanup[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds the backend for role. For RoleApp an unreachable broker only
// disables events; the worker cannot run without one.
func New(ctx context.Context, cfg *config.Config, role Role, logger *log.Logger) (*Backend, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	blog := logger.WithComponent(log.ComponentBackend)

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize record store: %w", err)
	}

	sinks, err := buildSinks(ctx, cfg, role)
	if err != nil {
		return nil, err
	}
	projector := export.NewProjector(repo, logger.WithComponent(log.ComponentExport).Logger, sinks...)

	b := &Backend{Repo: repo, Projector: projector}

	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		switch {
		case err != nil && role == RoleWorker:
			return nil, fmt.Errorf("initialize AMQP client: %w", err)
		case err != nil:
			blog.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err.Error())
		default:
			b.Events = client
			b.cleanup = append(b.cleanup, client.Close)
			blog.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else if role == RoleWorker {
		return nil, errors.New("worker requires AMQP_URL")
	}

	// A nil *amqp.Client must not become a non-nil interface.
	var events services.EventPublisher
	if b.Events != nil {
		events = b.Events
	}
	b.Service = services.NewExpenseService(repo, projector, events)

	blog.Info("Initialized backend",
		"db_path", repo.Path(),
		"sinks", projector.Sinks(),
		"amqp_enabled", b.Events != nil)
	return b, nil
}

func buildSinks(ctx context.Context, cfg *config.Config, role Role) ([]export.Sink, error) {
	var sinks []export.Sink

	if role == RoleApp {
		x, err := xlsx.New(cfg.ExportXLSXPath, cfg.ExportSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize workbook export: %w", err)
		}
		sinks = append(sinks, x)
	}

	if wantsGoogle(cfg, role) {
		g, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, gsheet.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets export: %w", err)
		}
		sinks = append(sinks, g)
	}

	if len(sinks) == 0 {
		return nil, errors.New("no export configured for the worker: set GOOGLE_SPREADSHEET_ID")
	}
	return sinks, nil
}

func wantsGoogle(cfg *config.Config, role Role) bool {
	if !cfg.GoogleEnabled() {
		return false
	}
	if role == RoleWorker {
		return true
	}
	return cfg.GoogleSyncMode != config.SyncModeWorker
}
