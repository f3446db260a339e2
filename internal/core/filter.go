package core

// Filter narrows a snapshot for the browse view.
//
// An empty Categories set matches every record. The date range is applied
// only when both endpoints are present; it is inclusive on both ends.
type Filter struct {
	Categories []Category
	From       Date
	To         Date
}

// HasDateRange reports whether both range endpoints were supplied.
func (f Filter) HasDateRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

// Apply returns the records matching the filter, preserving order.
func (f Filter) Apply(records []Expense) []Expense {
	if len(f.Categories) == 0 && !f.HasDateRange() {
		return records
	}

	wanted := make(map[Category]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		wanted[c] = struct{}{}
	}

	out := make([]Expense, 0, len(records))
	for _, r := range records {
		if len(wanted) > 0 {
			if _, ok := wanted[r.Category]; !ok {
				continue
			}
		}
		if f.HasDateRange() && !r.Date.Between(f.From, f.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Selects reports whether c is part of the category filter.
func (f Filter) Selects(c Category) bool {
	for _, sel := range f.Categories {
		if sel == c {
			return true
		}
	}
	return false
}
