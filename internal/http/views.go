package http

import (
	"fintrack/internal/core"
)

// recentLimit is how many records the dashboard lists.
const recentLimit = 10

type (
	categoryButton struct {
		Value    string
		Short    string
		Selected bool
	}

	formView struct {
		Categories  []categoryButton
		Selected    string
		Form        ExpenseForm
		Message     string
		MessageKind NotificationType
		Currency    string
	}

	expenseRow struct {
		ID       int64
		Date     string
		Category string
		Name     string
		Amount   string
		Comment  string
	}

	barView struct {
		Category string
		Amount   string
		Percent  int
	}

	dashboardView struct {
		Empty   bool
		Total   string
		Average string
		Count   int
		Bars    []barView
		Recent  []expenseRow
	}

	filterOption struct {
		Value    string
		Selected bool
	}

	deleteOption struct {
		ID    int64
		Label string
	}

	browseView struct {
		Categories []filterOption
		From       string
		To         string
		StoreEmpty bool
		Rows       []expenseRow
		Count      int
		Total      string
		Deletable  []deleteOption
	}

	indexView struct {
		Form      formView
		Dashboard dashboardView
		Browse    browseView
		Currency  string
	}
)

func newFormView(selected core.Category, form ExpenseForm, symbol string) formView {
	if form.Date == "" {
		form.Date = core.Today().String()
	}
	if form.Category == "" {
		form.Category = string(selected)
	}
	cats := core.Categories()
	buttons := make([]categoryButton, len(cats))
	for i, c := range cats {
		buttons[i] = categoryButton{
			Value:    string(c),
			Short:    c.Short(),
			Selected: c == selected,
		}
	}
	return formView{
		Categories: buttons,
		Selected:   string(selected),
		Form:       form,
		Currency:   symbol,
	}
}

func (v formView) withMessage(kind NotificationType, msg string) formView {
	v.MessageKind = kind
	v.Message = msg
	return v
}

func newExpenseRows(records []core.Expense, symbol string) []expenseRow {
	rows := make([]expenseRow, len(records))
	for i, e := range records {
		rows[i] = expenseRow{
			ID:       e.ID,
			Date:     e.Date.String(),
			Category: string(e.Category),
			Name:     e.Name,
			Amount:   e.Amount.Format(symbol),
			Comment:  e.Comment,
		}
	}
	return rows
}

func newDashboardView(records []core.Expense, symbol string) dashboardView {
	if len(records) == 0 {
		return dashboardView{Empty: true}
	}
	sum := core.Summarize(records)

	v := dashboardView{
		Total:   sum.Total.Format(symbol),
		Average: "no data",
		Count:   sum.Count,
		Recent:  newExpenseRows(core.Recent(records, recentLimit), symbol),
	}
	if sum.HasAverage {
		v.Average = core.NewMoney(sum.Average.Decimal).Format(symbol)
	}

	var max core.Money
	if len(sum.ByCategory) > 0 {
		max = sum.ByCategory[0].Amount
	}
	for _, ca := range sum.ByCategory {
		v.Bars = append(v.Bars, barView{
			Category: string(ca.Category),
			Amount:   ca.Amount.Format(symbol),
			Percent:  barPercent(ca.Amount, max),
		})
	}
	return v
}

func newBrowseView(records []core.Expense, f core.Filter, symbol string) browseView {
	cats := core.Categories()
	opts := make([]filterOption, len(cats))
	for i, c := range cats {
		opts[i] = filterOption{Value: string(c), Selected: f.Selects(c)}
	}

	filtered := f.Apply(records)
	del := make([]deleteOption, len(filtered))
	for i, e := range filtered {
		del[i] = deleteOption{ID: e.ID, Label: e.Label(symbol)}
	}

	return browseView{
		Categories: opts,
		From:       f.From.String(),
		To:         f.To.String(),
		StoreEmpty: len(records) == 0,
		Rows:       newExpenseRows(filtered, symbol),
		Count:      len(filtered),
		Total:      core.Total(filtered).Format(symbol),
		Deletable:  del,
	}
}
