package ledger

import (
	"slices"
	"strings"

	"findash/internal/core"
)

// Matches reports whether t passes the category filter and the search term.
// The term matches description or category, case-insensitively; an empty
// term matches everything.
func Matches(t core.Transaction, category, search string) bool {
	if category != AllCategories && t.Category != category {
		return false
	}
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.Category), term)
}

// Compare orders a and b by column, ascending.
func Compare(a, b core.Transaction, c Column) int {
	switch c {
	case ColumnDate:
		return strings.Compare(a.Date, b.Date)
	case ColumnDescription:
		return strings.Compare(a.Description, b.Description)
	case ColumnAmount:
		return a.Amount.Cmp(b.Amount)
	case ColumnCategory:
		return strings.Compare(a.Category, b.Category)
	}
	return 0
}

// Apply returns a new slice with the transactions matching q, sorted by
// q.Sort. The input is never modified. Equal keys keep input order.
func Apply(txs []core.Transaction, q Query) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if Matches(t, q.Category, q.Search) {
			out = append(out, t)
		}
	}
	col, dir := q.Sort.Column, q.Sort.Direction
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		c := Compare(a, b, col)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Option is one entry of the category filter select.
type Option struct {
	Value string
	Label string
}

// CategoryOptions returns the "all" option followed by each distinct
// category in order of first appearance.
func CategoryOptions(txs []core.Transaction) []Option {
	opts := []Option{{Value: AllCategories, Label: "All Categories"}}
	seen := map[string]struct{}{AllCategories: {}}
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		opts = append(opts, Option{Value: t.Category, Label: t.Category})
	}
	return opts
}

// HasCategory reports whether value is one of opts.
func HasCategory(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
