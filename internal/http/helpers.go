package http

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// barPercent is the width of a category bar relative to the largest one,
// rounded and clamped to [2, 100] so small categories stay visible.
func barPercent(amount, max core.Money) int {
	if !max.IsPositive() || !amount.IsPositive() {
		return 0
	}
	p := int(amount.Div(max.Decimal).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	switch {
	case p < 2:
		return 2
	case p > 100:
		return 100
	}
	return p
}
