// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.

package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// maxFieldLen bounds free text fields.
const maxFieldLen = 200

var errInvalidID = errors.New("invalid expense id")

// ExpenseForm holds the raw submitted values so the form can be re-rendered
// exactly as the user typed it.
type ExpenseForm struct {
	Date     string
	Category string
	Name     string
	Amount   string
	Comment  string
}

// ParseExpenseForm reads the entry form fields from form values.
func ParseExpenseForm(form url.Values) ExpenseForm {
	return ExpenseForm{
		Date:     strings.TrimSpace(form.Get("date")),
		Category: sanitizeInput(form.Get("category")),
		Name:     truncate(sanitizeInput(form.Get("name")), maxFieldLen),
		Amount:   strings.TrimSpace(form.Get("amount")),
		Comment:  truncate(sanitizeInput(form.Get("comment")), maxFieldLen),
	}
}

// Expense converts the form into a domain value. The first field error is
// returned; an empty date means today.
func (f ExpenseForm) Expense() (core.Expense, error) {
	date := core.Today()
	if f.Date != "" {
		d, err := core.ParseDate(f.Date)
		if err != nil {
			return core.Expense{}, err
		}
		date = d
	}

	category, err := core.ParseCategory(f.Category)
	if err != nil {
		return core.Expense{}, err
	}

	if f.Name == "" {
		return core.Expense{}, core.ErrEmptyName
	}

	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		Date:     date,
		Category: category,
		Name:     f.Name,
		Amount:   amount,
		Comment:  f.Comment,
	}
	return e, e.Validate()
}

// ParseFilter builds the browse filter from query parameters. Unknown
// categories and malformed dates are ignored.
func ParseFilter(q url.Values) core.Filter {
	var f core.Filter
	seen := make(map[core.Category]bool)
	for _, raw := range q["category"] {
		c, err := core.ParseCategory(raw)
		if err != nil || seen[c] {
			continue
		}
		seen[c] = true
		f.Categories = append(f.Categories, c)
	}
	if d, err := core.ParseDate(q.Get("from")); err == nil {
		f.From = d
	}
	if d, err := core.ParseDate(q.Get("to")); err == nil {
		f.To = d
	}
	return f
}

// ParseID reads a positive expense id from the form.
func ParseID(form url.Values) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(form.Get("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for read-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
