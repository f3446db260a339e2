package core

import "strings"

// Category is one of the fixed expense labels. The store keeps it as free
// text; Valid reports membership in the closed set.
type Category string

const (
	FoodDining     Category = "Food & Dining"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Entertainment  Category = "Entertainment"
	BillsUtilities Category = "Bills & Utilities"
	HealthMedical  Category = "Health & Medical"
	Education      Category = "Education"
	Travel         Category = "Travel"
	Groceries      Category = "Groceries"
	PersonalCare   Category = "Personal Care"
	OtherCategory  Category = "Other"
)

var categories = []Category{
	FoodDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsUtilities,
	HealthMedical,
	Education,
	Travel,
	Groceries,
	PersonalCare,
	OtherCategory,
}

// Categories returns the categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// DefaultCategory is the category highlighted before the user picks one.
func DefaultCategory() Category {
	return categories[0]
}

// ParseCategory returns the category matching s exactly (after trimming).
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Short is the first word of the label, used on quick-select buttons.
func (c Category) Short() string {
	s := string(c)
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}

func (c Category) String() string {
	return string(c)
}
