package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

type (
	Repository interface {
		Insert(ctx context.Context, e core.Expense) (int64, error)
		ListAll(ctx context.Context) ([]core.Expense, error)
		Delete(ctx context.Context, id int64) error
	}

	// Projector rewrites the exports from the current store contents.
	Projector interface {
		Project(ctx context.Context) error
	}

	EventPublisher interface {
		PublishExpenseEvent(ctx context.Context, e amqp.ExpenseEvent) error
	}
)

// Receipt describes a committed mutation. ExportErr is set when the store
// write succeeded but the export that follows it did not.
type Receipt struct {
	ID        int64
	ExportErr error
}

// ExpenseService is the single write path: validate, mutate the store,
// re-export, then notify. Writers are serialised so each export reflects
// the mutation that triggered it.
type ExpenseService struct {
	mu        sync.Mutex
	repo      Repository
	projector Projector
	events    EventPublisher
}

// NewExpenseService wires the store and projector. events may be nil.
func NewExpenseService(repo Repository, projector Projector, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		repo:      repo,
		projector: projector,
		events:    events,
	}
}

// CreateExpense validates and stores e. Validation errors are returned
// before the store is touched.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (Receipt, error) {
	if err := e.Validate(); err != nil {
		return Receipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.repo.Insert(ctx, e)
	if err != nil {
		return Receipt{}, fmt.Errorf("save expense: %w", err)
	}

	r := Receipt{ID: id, ExportErr: s.project(ctx, "create", id)}
	s.publish(ctx, amqp.EventExpenseCreated, id)
	return r, nil
}

// DeleteExpense removes the record with id. Unknown ids still succeed and
// still trigger an export.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return Receipt{}, fmt.Errorf("delete expense: %w", err)
	}

	r := Receipt{ID: id, ExportErr: s.project(ctx, "delete", id)}
	s.publish(ctx, amqp.EventExpenseDeleted, id)
	return r, nil
}

// ListExpenses returns the current snapshot, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return records, nil
}

// Summary computes the dashboard aggregates from a fresh snapshot.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, []core.Expense, error) {
	records, err := s.ListExpenses(ctx)
	if err != nil {
		return core.Summary{}, nil, err
	}
	return core.Summarize(records), records, nil
}

// Export runs one projection outside of a mutation.
func (s *ExpenseService) Export(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.projector == nil {
		return nil
	}
	return s.projector.Project(ctx)
}

func (s *ExpenseService) project(ctx context.Context, op string, id int64) error {
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Project(ctx); err != nil {
		slog.WarnContext(ctx, "Export failed after committed mutation",
			"operation", op,
			"id", id,
			"error", err)
		return err
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, t amqp.EventType, id int64) {
	if s.events == nil {
		return
	}
	// The mutation is committed; a lost event only delays the mirror.
	if err := s.events.PublishExpenseEvent(ctx, amqp.NewExpenseEvent(t, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", t,
			"id", id,
			"error", err)
	}
}
