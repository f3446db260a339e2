package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/export"
)

type fakeSheets struct {
	mu       sync.Mutex
	calls    []string
	values   [][]interface{}
	failWith int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	if f.failWith != 0 {
		w.WriteHeader(f.failWith)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
		return
	}

	if r.Method == http.MethodPut {
		var vr struct {
			Values [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.values = vr.Values
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

func newTestSink(t *testing.T, fake *fakeSheets) *Sink {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewWithService(svc, "sheet-id", "Expenses")
}

func TestWriteClearsThenUpdates(t *testing.T) {
	fake := &fakeSheets{}
	s := newTestSink(t, fake)

	table := export.Table{
		Header: export.Header,
		Rows:   [][]any{{"2024-01-05", "Food & Dining", "Lunch", 12.5, ""}},
	}
	if err := s.Write(context.Background(), table); err != nil {
		t.Fatalf("write: %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 calls, got %v", fake.calls)
	}
	if !strings.HasPrefix(fake.calls[0], "POST ") || !strings.HasSuffix(fake.calls[0], ":clear") {
		t.Fatalf("first call should clear the tab, got %q", fake.calls[0])
	}
	if !strings.HasPrefix(fake.calls[1], "PUT ") || !strings.Contains(fake.calls[1], "sheet-id") {
		t.Fatalf("second call should update values, got %q", fake.calls[1])
	}

	if len(fake.values) != 2 {
		t.Fatalf("expected header + 1 row, got %v", fake.values)
	}
	if fake.values[0][0] != "DATE" || fake.values[1][2] != "Lunch" {
		t.Fatalf("unexpected values %v", fake.values)
	}
	if amount, ok := fake.values[1][3].(float64); !ok || amount != 12.5 {
		t.Fatalf("amount should be sent as a number, got %#v", fake.values[1][3])
	}
}

func TestWriteReportsAPIError(t *testing.T) {
	s := newTestSink(t, &fakeSheets{failWith: http.StatusForbidden})
	if err := s.Write(context.Background(), export.Table{Header: export.Header}); err == nil {
		t.Fatal("expected API error")
	}
}

func TestNewValidatesInput(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, "", "Expenses", Credentials{JSON: "{}"}); err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if _, err := New(ctx, "id", "Expenses", Credentials{}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if _, err := New(ctx, "id", "Expenses", Credentials{File: "/does/not/exist.json"}); err == nil {
		t.Fatal("expected error for unreadable credentials file")
	}
}

func TestWriteWithoutService(t *testing.T) {
	s := &Sink{}
	if err := s.Write(context.Background(), export.Table{}); err == nil {
		t.Fatal("expected error without service")
	}
}
