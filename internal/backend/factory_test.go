package backend

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:            "8081",
		SQLiteDBPath:    filepath.Join(dir, "expenses.db"),
		ExportXLSXPath:  filepath.Join(dir, "daily_expenses.xlsx"),
		ExportSheetName: "Expenses",
		CurrencySymbol:  "₹",
		LogLevel:        "info",
		GoogleSheetName: "Expenses",
		GoogleSyncMode:  config.SyncModeSync,
	}
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard})
}

func TestNewAppBackend(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(context.Background(), cfg, RoleApp, quietLogger())
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	defer b.Close()

	if b.Events != nil {
		t.Fatal("events should be disabled without AMQP_URL")
	}
	if got := b.Projector.Sinks(); len(got) != 1 || got[0] != "xlsx" {
		t.Fatalf("sinks = %v, want [xlsx]", got)
	}

	amount, _ := core.ParseAmount("12.50")
	receipt, err := b.Service.CreateExpense(context.Background(), core.Expense{
		Date: core.NewDate(2024, 1, 5), Category: core.Groceries, Name: "Milk", Amount: amount,
	})
	if err != nil || receipt.ExportErr != nil {
		t.Fatalf("create: %v, export: %v", err, receipt.ExportErr)
	}
	if _, err := os.Stat(cfg.ExportXLSXPath); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
}

func TestWorkerRequiresAMQP(t *testing.T) {
	cfg := testConfig(t)
	if _, err := New(context.Background(), cfg, RoleWorker, quietLogger()); err == nil {
		t.Fatal("worker without a sheet or broker should fail")
	}
}

func TestWantsGoogle(t *testing.T) {
	cfg := testConfig(t)
	if wantsGoogle(cfg, RoleApp) || wantsGoogle(cfg, RoleWorker) {
		t.Fatal("mirror disabled without a spreadsheet id")
	}

	cfg.GoogleSpreadsheetID = "sheet-id"
	if !wantsGoogle(cfg, RoleApp) || !wantsGoogle(cfg, RoleWorker) {
		t.Fatal("sync mode writes the mirror from both roles")
	}

	cfg.GoogleSyncMode = config.SyncModeWorker
	if wantsGoogle(cfg, RoleApp) {
		t.Fatal("worker mode keeps the mirror off the request path")
	}
	if !wantsGoogle(cfg, RoleWorker) {
		t.Fatal("the worker owns the mirror in worker mode")
	}
}
