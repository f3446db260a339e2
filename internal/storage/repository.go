package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// ErrUnavailable is returned when the database cannot be opened, read or
// written. The underlying driver error is wrapped alongside it.
var ErrUnavailable = errors.New("storage unavailable")

// SQLiteRepository is the record store. It keeps only the database path:
// every operation opens its own connection and closes it before returning.
type SQLiteRepository struct {
	dbPath string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create db directory: %w", ErrUnavailable, err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return &SQLiteRepository{dbPath: dbPath}, nil
}

// Path returns the database file location.
func (r *SQLiteRepository) Path() string {
	return r.dbPath
}

func (r *SQLiteRepository) withQueries(ctx context.Context, fn func(*Queries) error) error {
	db, err := sql.Open("sqlite", r.dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("%w: open sqlite database: %w", ErrUnavailable, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping database: %w", ErrUnavailable, err)
	}

	if err := fn(New(db)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Insert stores the expense and returns the identifier assigned to it.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Expense) (int64, error) {
	var id int64
	err := r.withQueries(ctx, func(q *Queries) error {
		var err error
		id, err = q.CreateExpense(ctx, CreateExpenseParams{
			Date:     e.Date.String(),
			Category: string(e.Category),
			Name:     e.Name,
			Amount:   e.Amount.InexactFloat64(),
			Comment:  sql.NullString{String: e.Comment, Valid: e.Comment != ""},
		})
		if err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"name", e.Name,
		"amount", e.Amount.String(),
		"category", e.Category)

	return id, nil
}

// ListAll returns every expense, newest identifier first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Expense, error) {
	var rows []Expense
	err := r.withQueries(ctx, func(q *Queries) error {
		var err error
		rows, err = q.ListExpenses(ctx)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	expenses := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := row.toCore()
		if err != nil {
			return nil, fmt.Errorf("%w: expense %d: %w", ErrUnavailable, row.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Delete removes the expense with the given id. Deleting an id that does not
// exist is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := r.withQueries(ctx, func(q *Queries) error {
		var err error
		affected, err = q.DeleteExpense(ctx, id)
		if err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if affected == 0 {
		slog.DebugContext(ctx, "Delete of unknown expense ignored", "id", id)
	}
	return nil
}

func (e Expense) toCore() (core.Expense, error) {
	d, err := core.ParseDate(e.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", e.Date, err)
	}
	return core.Expense{
		ID:       e.ID,
		Date:     d,
		Category: core.Category(e.Category),
		Name:     e.Name,
		Amount:   core.MoneyFromFloat(e.Amount),
		Comment:  e.Comment.String,
	}, nil
}
