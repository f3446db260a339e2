// Package core provides money parsing and handling utilities.
//
// This file contains the Money type, a two-decimal amount backed by
// shopspring/decimal, plus parsing and display helpers.
package core

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with two decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to two decimal places.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MoneyFromFloat converts a stored floating point amount back to Money.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// ParseAmount converts a decimal string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up to two decimal places. Zero parses successfully; callers reject it
// through Validate. Negative or malformed values return ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,345") -> 12.35
//	ParseAmount("-1")     -> error
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(d), nil
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Plus returns m + o.
func (m Money) Plus(o Money) Money {
	return Money{Decimal: m.Add(o.Decimal)}
}

// String returns the amount with exactly two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.StringFixed(2)
}

// Format renders the amount for display with thousand separators,
// e.g. Format("₹") -> "₹1,234.50".
func (m Money) Format(symbol string) string {
	return symbol + humanize.FormatFloat("#,###.##", m.Round(2).InexactFloat64())
}
