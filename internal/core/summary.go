package core

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAggregate is a category total shown in the pie chart.
type CategoryAggregate struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MonthlyAggregate is an income/expense pair for one month label.
type MonthlyAggregate struct {
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Summary is the dashboard's headline panel.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings"`
}

// Aggregates groups the chart projections.
type Aggregates struct {
	Categories []CategoryAggregate `json:"categories"`
	Monthly    []MonthlyAggregate  `json:"monthly"`
}

var ErrInvalidAggregate = errors.New("invalid aggregate")

func (a Aggregates) Validate() error {
	for _, c := range a.Categories {
		if c.Name == "" || !c.Value.IsPositive() {
			return fmt.Errorf("%w: category %q value %s", ErrInvalidAggregate, c.Name, c.Value)
		}
	}
	for _, m := range a.Monthly {
		if m.Name == "" || m.Income.IsNegative() || m.Expenses.IsNegative() {
			return fmt.Errorf("%w: month %q", ErrInvalidAggregate, m.Name)
		}
	}
	return nil
}

// Summarize totals the monthly aggregates.
func Summarize(monthly []MonthlyAggregate) Summary {
	var s Summary
	for _, m := range monthly {
		s.TotalIncome = s.TotalIncome.Add(m.Income)
		s.TotalExpenses = s.TotalExpenses.Add(m.Expenses)
	}
	s.NetSavings = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// CategoryTotal sums the category aggregates.
func CategoryTotal(cats []CategoryAggregate) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(c.Value)
	}
	return total
}

// DeriveAggregates computes the projections from transactions: expenses per
// category in order of first appearance and income/expenses per calendar
// month in chronological order. Months are labeled "Jan".."Dec"; when the
// transactions span more than one year the label carries the year too
// ("Jun 2024") so every label names a single month. Transactions must be
// valid.
func DeriveAggregates(txs []Transaction) Aggregates {
	var agg Aggregates

	catIdx := map[string]int{}
	for _, t := range txs {
		if t.IsIncome() {
			continue
		}
		i, ok := catIdx[t.Category]
		if !ok {
			i = len(agg.Categories)
			catIdx[t.Category] = i
			agg.Categories = append(agg.Categories, CategoryAggregate{Name: t.Category})
		}
		agg.Categories[i].Value = agg.Categories[i].Value.Add(t.Amount.Abs())
	}

	type ym struct{ year, month int }
	months := map[ym]*MonthlyAggregate{}
	var order []ym
	for _, t := range txs {
		tm, err := t.Time()
		if err != nil {
			continue
		}
		k := ym{tm.Year(), int(tm.Month())}
		m, ok := months[k]
		if !ok {
			m = &MonthlyAggregate{}
			months[k] = m
			order = append(order, k)
		}
		if t.IsIncome() {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Expenses = m.Expenses.Add(t.Amount.Abs())
		}
	}
	slices.SortFunc(order, func(a, b ym) int {
		return (a.year*12 + a.month) - (b.year*12 + b.month)
	})
	multiYear := len(order) > 0 && order[0].year != order[len(order)-1].year
	for _, k := range order {
		m := months[k]
		m.Name = time.Month(k.month).String()[:3]
		if multiYear {
			m.Name += " " + strconv.Itoa(k.year)
		}
		agg.Monthly = append(agg.Monthly, *m)
	}
	return agg
}

// Mismatch describes one disagreement between stored and derived aggregates.
type Mismatch struct {
	Kind    string // "category" or "month"
	Name    string
	Stored  string
	Derived string
}

// CompareAggregates lists where stored projections disagree with the ones
// derived from the transactions. Names present on one side only count too.
func CompareAggregates(stored, derived Aggregates) []Mismatch {
	var out []Mismatch

	dc := map[string]decimal.Decimal{}
	for _, c := range derived.Categories {
		dc[c.Name] = c.Value
	}
	sc := map[string]bool{}
	for _, c := range stored.Categories {
		sc[c.Name] = true
		d, ok := dc[c.Name]
		if !ok || !d.Equal(c.Value) {
			out = append(out, Mismatch{Kind: "category", Name: c.Name, Stored: c.Value.String(), Derived: d.String()})
		}
	}
	for _, c := range derived.Categories {
		if !sc[c.Name] {
			out = append(out, Mismatch{Kind: "category", Name: c.Name, Stored: "0", Derived: c.Value.String()})
		}
	}

	dm := map[string]MonthlyAggregate{}
	for _, m := range derived.Monthly {
		dm[m.Name] = m
	}
	sm := map[string]bool{}
	for _, m := range stored.Monthly {
		sm[m.Name] = true
		d, ok := dm[m.Name]
		if !ok || !d.Income.Equal(m.Income) || !d.Expenses.Equal(m.Expenses) {
			out = append(out, Mismatch{
				Kind:    "month",
				Name:    m.Name,
				Stored:  m.Income.String() + "/" + m.Expenses.String(),
				Derived: d.Income.String() + "/" + d.Expenses.String(),
			})
		}
	}
	for _, m := range derived.Monthly {
		if !sm[m.Name] {
			out = append(out, Mismatch{
				Kind:    "month",
				Name:    m.Name,
				Stored:  "0/0",
				Derived: m.Income.String() + "/" + m.Expenses.String(),
			})
		}
	}
	return out
}
