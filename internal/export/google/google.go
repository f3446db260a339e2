// Package google mirrors the expense table into a Google Sheets tab.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/export"
)

// Ensure interface conformance
var _ export.Sink = (*Sink)(nil)

// Credentials selects how the service account is supplied. JSON wins over
// File when both are set.
type Credentials struct {
	JSON string
	File string
}

type Sink struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, spreadsheetID, sheet string, creds Credentials) (*Sink, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	credentialsJSON, err := creds.load()
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, sheet), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheet string) *Sink {
	if sheet == "" {
		sheet = "Expenses"
	}
	return &Sink{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}
}

func (c Credentials) load() ([]byte, error) {
	switch {
	case strings.TrimSpace(c.JSON) != "":
		return []byte(c.JSON), nil
	case strings.TrimSpace(c.File) != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

func (s *Sink) Name() string { return "google-sheets" }

// Write clears the tab and writes the header and every row from A1.
func (s *Sink) Write(ctx context.Context, t export.Table) error {
	if s.svc == nil {
		return errors.New("sheets service not initialized")
	}

	tab := fmt.Sprintf("'%s'", strings.ReplaceAll(s.sheet, "'", "''"))

	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, tab, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", s.sheet, err)
	}

	values := make([][]interface{}, 0, len(t.Rows)+1)
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	values = append(values, header)
	for _, row := range t.Rows {
		values = append(values, row)
	}

	vr := &gsheet.ValueRange{Values: values}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, tab+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update sheet %s: %w", s.sheet, err)
	}

	slog.DebugContext(ctx, "Google Sheets mirror updated",
		"spreadsheet_id", s.spreadsheetID,
		"sheet", s.sheet,
		"rows", len(t.Rows))
	return nil
}
