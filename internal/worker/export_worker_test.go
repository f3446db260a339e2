package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fintrack/internal/amqp"
)

type countingProjector struct {
	calls int
	err   error
}

func (p *countingProjector) Project(context.Context) error {
	p.calls++
	return p.err
}

type scriptedSource struct {
	batches [][]amqp.ExpenseEvent
	errs    []error
}

func (s *scriptedSource) ConsumeExpenseEvents(ctx context.Context, handler func(context.Context, []amqp.ExpenseEvent) error) error {
	for _, b := range s.batches {
		s.errs = append(s.errs, handler(ctx, b))
	}
	return context.Canceled
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunProjectsOncePerBatch(t *testing.T) {
	proj := &countingProjector{}
	src := &scriptedSource{batches: [][]amqp.ExpenseEvent{
		{amqp.NewExpenseEvent(amqp.EventExpenseCreated, 1), amqp.NewExpenseEvent(amqp.EventExpenseCreated, 2)},
		{amqp.NewExpenseEvent(amqp.EventExpenseDeleted, 1)},
		{},
	}}

	err := NewExportWorker(proj, src, discard()).Run(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected consumer error to propagate, got %v", err)
	}
	// Startup projection plus one per non-empty batch.
	if proj.calls != 3 {
		t.Fatalf("expected 3 projections, got %d", proj.calls)
	}
}

func TestHandleEventsReturnsProjectionError(t *testing.T) {
	proj := &countingProjector{err: errors.New("sheets quota")}
	w := NewExportWorker(proj, nil, discard())
	if err := w.HandleEvents(context.Background(), []amqp.ExpenseEvent{amqp.NewExpenseEvent(amqp.EventExpenseCreated, 1)}); err == nil {
		t.Fatal("expected error so the batch is requeued")
	}
}
