// Package export mirrors the record store into spreadsheet targets.
package export

import (
	"context"

	"fintrack/internal/core"
)

// Header is the fixed column order of every mirror. The record id is not part
// of the mirror.
var Header = []string{"DATE", "EXPENSE_CATEGORY", "EXPENSE_NAME", "AMOUNT", "COMMENT"}

// Ports for outbound adapters.
type (
	// Lister reads the full current record set.
	Lister interface {
		ListAll(ctx context.Context) ([]core.Expense, error)
	}

	// Sink receives a complete table and replaces whatever it held before.
	Sink interface {
		Name() string
		Write(ctx context.Context, t Table) error
	}
)

// Table is a header row followed by one row per record.
type Table struct {
	Header []string
	Rows   [][]any
}

// BuildTable projects records into rows in the order given.
func BuildTable(records []core.Expense) Table {
	rows := make([][]any, 0, len(records))
	for _, e := range records {
		rows = append(rows, []any{
			e.Date.String(),
			string(e.Category),
			e.Name,
			e.Amount.InexactFloat64(),
			e.Comment,
		})
	}
	header := make([]string, len(Header))
	copy(header, Header)
	return Table{Header: header, Rows: rows}
}
