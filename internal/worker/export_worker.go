// Package worker re-projects the exports in response to mutation events.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
)

type (
	Projector interface {
		Project(ctx context.Context) error
	}

	// EventSource delivers batches of mutation events until ctx ends.
	EventSource interface {
		ConsumeExpenseEvents(ctx context.Context, handler func(context.Context, []amqp.ExpenseEvent) error) error
	}
)

// ExportWorker runs one projection per batch of events. The projection reads
// the whole store, so the content of the events does not matter, only that
// something changed.
type ExportWorker struct {
	projector Projector
	source    EventSource
	logger    *slog.Logger
}

func NewExportWorker(projector Projector, source EventSource, logger *slog.Logger) *ExportWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportWorker{projector: projector, source: source, logger: logger}
}

// HandleEvents is the consumer callback. A returned error requeues the batch.
func (w *ExportWorker) HandleEvents(ctx context.Context, events []amqp.ExpenseEvent) error {
	if len(events) == 0 {
		return nil
	}
	start := time.Now()

	if err := w.projector.Project(ctx); err != nil {
		return fmt.Errorf("project after %d events: %w", len(events), err)
	}

	w.logger.InfoContext(ctx, "Export refreshed from events",
		"events", len(events),
		"last_type", events[len(events)-1].Type,
		"last_id", events[len(events)-1].ID,
		"duration", time.Since(start))
	return nil
}

// Run projects once on startup to catch up with anything missed while the
// worker was down, then consumes until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context) error {
	if err := w.projector.Project(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Startup export failed", "error", err)
	} else {
		w.logger.InfoContext(ctx, "Startup export completed")
	}
	return w.source.ConsumeExpenseEvents(ctx, w.HandleEvents)
}
