package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Expense is the row shape of the expenses table.
type Expense struct {
	ID       int64
	Date     string
	Category string
	Name     string
	Amount   float64
	Comment  sql.NullString
}

const createExpense = `-- name: CreateExpense :execlastid
INSERT INTO expenses (date, category, name, amount, comment)
VALUES (?, ?, ?, ?, ?)
`

type CreateExpenseParams struct {
	Date     string
	Category string
	Name     string
	Amount   float64
	Comment  sql.NullString
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createExpense,
		arg.Date,
		arg.Category,
		arg.Name,
		arg.Amount,
		arg.Comment,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listExpenses = `-- name: ListExpenses :many
SELECT id, date, category, name, amount, comment
FROM expenses
ORDER BY id DESC
`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.Category,
			&i.Name,
			&i.Amount,
			&i.Comment,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteExpense = `-- name: DeleteExpense :execrows
DELETE FROM expenses WHERE id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
