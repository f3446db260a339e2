package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Expense is a single recorded expense. ID is assigned by the store and
	// is zero until the record has been inserted.
	Expense struct {
		ID       int64
		Date     Date
		Category Category
		Name     string
		Amount   Money
		Comment  string
	}
)

// ErrValidation is the parent of every input validation error.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidDate     = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	ErrEmptyName       = fmt.Errorf("%w: expense name is required", ErrValidation)
	ErrInvalidCategory = fmt.Errorf("%w: unknown category", ErrValidation)
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Between reports whether from <= d <= to.
func (d Date) Between(from, to Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	return e.Amount.Validate()
}

// Label is the human-readable selector text used when picking a record to
// delete: "date - name - amount".
func (e Expense) Label(symbol string) string {
	return e.Date.String() + " - " + e.Name + " - " + e.Amount.Format(symbol)
}
