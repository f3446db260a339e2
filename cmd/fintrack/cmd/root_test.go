package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SQLITE_DB_PATH", filepath.Join(dir, "expenses.db"))
	t.Setenv("EXPORT_XLSX_PATH", filepath.Join(dir, "daily_expenses.xlsx"))
	t.Setenv("CURRENCY_SYMBOL", "$")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SYNC_MODE", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAddListStatsDelete(t *testing.T) {
	dir := testEnv(t)

	out, err := run(t, "add", "--date", "2024-01-05", "--category", "Groceries", "--name", "Milk", "--amount", "20.50")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Added #1: 2024-01-05 - Milk - $20.50") {
		t.Fatalf("unexpected add output %q", out)
	}
	if _, err := run(t, "add", "--date", "2024-01-06", "--category", "Travel", "--name", "Bus", "--amount", "10.25"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "daily_expenses.xlsx")); err != nil {
		t.Fatalf("export not written: %v", err)
	}

	out, err = run(t, "list", "--category", "Travel")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Bus") || strings.Contains(out, "Milk") {
		t.Fatalf("filter not applied:\n%s", out)
	}

	out, err = run(t, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total:   $30.75", "Average: $15.38", "Count:   2"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "delete", "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, _ = run(t, "list")
	if strings.Contains(out, "Milk") || !strings.Contains(out, "Bus") {
		t.Fatalf("unexpected list after delete:\n%s", out)
	}
}

func TestAddRejectsInvalidAmount(t *testing.T) {
	testEnv(t)
	if _, err := run(t, "add", "--name", "Milk", "--amount", "0"); err == nil {
		t.Fatal("zero amount should be rejected")
	}
	out, err := run(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No expenses found.") {
		t.Fatalf("rejected expense was stored:\n%s", out)
	}
}

func TestDeleteRejectsBadID(t *testing.T) {
	testEnv(t)
	if _, err := run(t, "delete", "abc"); err == nil {
		t.Fatal("non numeric id should fail")
	}
}

func TestExportAndEmptyStats(t *testing.T) {
	testEnv(t)
	out, err := run(t, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported to xlsx") {
		t.Fatalf("unexpected export output %q", out)
	}

	out, err = run(t, "stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No expenses recorded yet.") {
		t.Fatalf("unexpected stats output %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	testEnv(t)
	t.Setenv("PORT", "not-a-port")
	if _, err := run(t, "stats"); err == nil {
		t.Fatal("invalid configuration should fail before running")
	}
}
