// Package ledger derives the transaction table view: filtering by category
// and search term, sorting by a column and the category filter options.
package ledger

import (
	"strings"
)

// Column names a sortable transaction field.
type Column string

const (
	ColumnDate        Column = "date"
	ColumnDescription Column = "description"
	ColumnAmount      Column = "amount"
	ColumnCategory    Column = "category"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// AllCategories is the synthetic filter value that disables category filtering.
const AllCategories = "all"

// MaxSearchLength bounds the search term, in runes.
const MaxSearchLength = 100

// Columns lists the sortable columns in table order.
func Columns() []Column {
	return []Column{ColumnDate, ColumnDescription, ColumnAmount, ColumnCategory}
}

func (c Column) IsValid() bool {
	switch c {
	case ColumnDate, ColumnDescription, ColumnAmount, ColumnCategory:
		return true
	}
	return false
}

// Label is the table header text.
func (c Column) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Sort is a column plus direction.
type Sort struct {
	Column    Column
	Direction Direction
}

// DefaultSort is the initial table order: newest first.
var DefaultSort = Sort{Column: ColumnDate, Direction: Desc}

// Toggle applies a header click: the active column flips direction, any
// other column becomes active in ascending order.
func (s Sort) Toggle(c Column) Sort {
	if c == s.Column {
		return Sort{Column: c, Direction: s.Direction.Flip()}
	}
	return Sort{Column: c, Direction: Asc}
}

// Query holds the inputs the engine filters and sorts by.
type Query struct {
	Search   string
	Category string
	Sort     Sort
}

// DefaultQuery matches everything in the default order.
func DefaultQuery() Query {
	return Query{Category: AllCategories, Sort: DefaultSort}
}

// Key is a stable identity for memoizing views of this query.
func (q Query) Key() string {
	return strings.Join([]string{
		string(q.Sort.Column), string(q.Sort.Direction), q.Category, strings.ToLower(q.Search),
	}, "\x1f")
}

// LimitSearch caps the term at MaxSearchLength runes. Whitespace and every
// other character are kept, so "shopping " only matches text containing
// the trailing space.
func LimitSearch(s string) string {
	if r := []rune(s); len(r) > MaxSearchLength {
		s = string(r[:MaxSearchLength])
	}
	return s
}
