package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "expenses.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}

func testExpense(t *testing.T, name, amount string, c core.Category) core.Expense {
	t.Helper()
	m, err := core.ParseAmount(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return core.Expense{Date: core.NewDate(2024, 1, 5), Category: c, Name: name, Amount: m}
}

func TestNewSQLiteRepositoryCreatesFile(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := os.Stat(repo.Path()); err != nil {
		t.Fatalf("database file not created: %v", err)
	}

	// Re-opening an existing database must not fail on migrations.
	if _, err := NewSQLiteRepository(repo.Path()); err != nil {
		t.Fatalf("reopen repository: %v", err)
	}
}

func TestInsertAndListAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	lunch := testExpense(t, "Lunch", "12.50", core.FoodDining)
	lunch.Comment = "with team"
	id1, err := repo.Insert(ctx, lunch)
	if err != nil {
		t.Fatalf("insert lunch: %v", err)
	}
	id2, err := repo.Insert(ctx, testExpense(t, "Taxi", "8", core.Transportation))
	if err != nil {
		t.Fatalf("insert taxi: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not increasing: %d then %d", id1, id2)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != id2 || got[1].ID != id1 {
		t.Fatalf("expected newest first, got ids %d, %d", got[0].ID, got[1].ID)
	}

	l := got[1]
	if l.Name != "Lunch" || l.Category != core.FoodDining || l.Comment != "with team" {
		t.Fatalf("unexpected record %+v", l)
	}
	if l.Amount.String() != "12.50" {
		t.Fatalf("amount = %s, want 12.50", l.Amount)
	}
	if l.Date.String() != "2024-01-05" {
		t.Fatalf("date = %s", l.Date)
	}
	if got[0].Comment != "" {
		t.Fatalf("empty comment should round-trip as empty, got %q", got[0].Comment)
	}
}

func TestListAllEmpty(t *testing.T) {
	got, err := newTestRepo(t).ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.Insert(ctx, testExpense(t, "Lunch", "12.50", core.FoodDining))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	keep, err := repo.Insert(ctx, testExpense(t, "Taxi", "8", core.Transportation))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := repo.ListAll(ctx)
	if len(got) != 1 || got[0].ID != keep {
		t.Fatalf("unexpected records after delete: %+v", got)
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		if err := repo.Delete(ctx, 9999); err != nil {
			t.Fatalf("delete unknown id: %v", err)
		}
		got, _ := repo.ListAll(ctx)
		if len(got) != 1 {
			t.Fatalf("store changed after no-op delete: %+v", got)
		}
	})
}

func TestUnavailable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be opened as a database.
	bad := filepath.Join(dir, "db")
	if err := os.Mkdir(bad, 0o755); err != nil {
		t.Fatal(err)
	}

	repo := &SQLiteRepository{dbPath: bad}
	_, err := repo.ListAll(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
