package log

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/storage"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{core.ErrEmptyName, ErrorTypeValidation},
		{fmt.Errorf("save: %w", storage.ErrUnavailable), ErrorTypeDatabase},
		{fmt.Errorf("%w: xlsx", export.ErrWrite), ErrorTypeExport},
		{context.DeadlineExceeded, ErrorTypeTimeout},
		{errors.New("boom"), ErrorTypeInternal},
	}
	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestLoggerComponentAndOperation(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentHTTP, Output: &buf})

	l.Operation(context.Background(), OpCreate, nil, FieldExpenseID, 1)
	l.WithComponent(ComponentStorage).Operation(context.Background(), OpDelete, storage.ErrUnavailable)

	out := buf.String()
	if strings.Count(out, "component=") != 2 {
		t.Fatalf("each record should carry exactly one component: %s", out)
	}
	if !strings.Contains(out, "component=http") || !strings.Contains(out, "component=storage") {
		t.Fatalf("missing component tags: %s", out)
	}
	if !strings.Contains(out, "error_type=database_error") {
		t.Fatalf("missing error type: %s", out)
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatal("expected fallback logger")
	}
	l := New(DefaultConfig())
	if FromContext(NewContext(context.Background(), l)) != l {
		t.Fatal("logger not found in context")
	}
}

func TestFieldsWithExpense(t *testing.T) {
	f := NewFields().WithExpense(core.Expense{ID: 3, Name: "Taxi", Category: core.Transportation, Amount: core.MoneyFromFloat(8)}).
		WithError(core.ErrInvalidAmount)
	if f[FieldExpenseID] != int64(3) || f[FieldAmount] != "8.00" || f[FieldErrorType] != ErrorTypeValidation {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatal("slice length mismatch")
	}
}
