package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Summary bundles the dashboard aggregates computed from one snapshot.
type Summary struct {
	Total      Money
	Average    Money
	HasAverage bool // false when the snapshot is empty
	Count      int
	ByCategory []CategoryAmount
}

// Total sums the amount of every record; zero for an empty snapshot.
func Total(records []Expense) Money {
	var sum Money
	for _, r := range records {
		sum = sum.Plus(r.Amount)
	}
	return sum
}

// Average returns the arithmetic mean of the amounts. ok is false for an
// empty snapshot, which has no meaningful mean.
func Average(records []Expense) (avg Money, ok bool) {
	if len(records) == 0 {
		return Money{}, false
	}
	total := Total(records)
	return Money{Decimal: total.Div(decimal.NewFromInt(int64(len(records))))}, true
}

func Count(records []Expense) int {
	return len(records)
}

// TotalsByCategory sums amounts per category, largest total first. Ties are
// broken by category name so the order is stable. Categories without
// records are absent.
func TotalsByCategory(records []Expense) []CategoryAmount {
	sums := make(map[Category]Money)
	for _, r := range records {
		sums[r.Category] = sums[r.Category].Plus(r.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for c, m := range sums {
		out = append(out, CategoryAmount{Category: c, Amount: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount.Decimal); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Recent returns the first n records of the snapshot, which is ordered
// newest first.
func Recent(records []Expense, n int) []Expense {
	if n < len(records) {
		return records[:n]
	}
	return records
}

// Summarize computes every dashboard aggregate from one snapshot.
func Summarize(records []Expense) Summary {
	avg, ok := Average(records)
	return Summary{
		Total:      Total(records),
		Average:    avg,
		HasAverage: ok,
		Count:      Count(records),
		ByCategory: TotalsByCategory(records),
	}
}
