package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"findash/internal/core"
)

func TestNormalize(t *testing.T) {
	opts := CategoryOptions(core.FixtureTransactions())

	tests := []struct {
		name  string
		in    Params
		want  Query
		fixes int
	}{
		{"empty is default", Params{}, DefaultQuery(), 0},
		{"valid input", Params{Search: " sal ", Category: "Income", Column: "Amount", Direction: "DESC"},
			Query{Search: " sal ", Category: "Income", Sort: Sort{ColumnAmount, Desc}}, 0},
		{"new column defaults asc", Params{Column: "category"},
			Query{Category: AllCategories, Sort: Sort{ColumnCategory, Asc}}, 0},
		{"date column keeps default dir", Params{Column: "date"}, DefaultQuery(), 0},
		{"direction only", Params{Direction: "asc"},
			Query{Category: AllCategories, Sort: Sort{ColumnDate, Asc}}, 0},
		{"unknown category", Params{Category: "Rent"}, DefaultQuery(), 1},
		{"unknown column", Params{Column: "bank", Direction: "asc"}, DefaultQuery(), 1},
		{"bad direction", Params{Column: "amount", Direction: "up"},
			Query{Category: AllCategories, Sort: Sort{ColumnAmount, Asc}}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, fixes := Normalize(tc.in, opts)
			assert.Equal(t, tc.want, got)
			assert.Len(t, fixes, tc.fixes)
		})
	}
}

func TestLimitSearch(t *testing.T) {
	assert.Equal(t, "shopping ", LimitSearch("shopping "))
	assert.Equal(t, "  a\tb \n", LimitSearch("  a\tb \n"))
	long := strings.Repeat("é", MaxSearchLength+20)
	assert.Equal(t, MaxSearchLength, len([]rune(LimitSearch(long))))
}

func TestSearchKeepsWhitespace(t *testing.T) {
	txs := core.FixtureTransactions()
	opts := CategoryOptions(txs)

	q, _ := Normalize(Params{Search: "shopping"}, opts)
	assert.Len(t, Apply(txs, q), 2)

	q, _ = Normalize(Params{Search: "shopping "}, opts)
	assert.Equal(t, "shopping ", q.Search)
	assert.Empty(t, Apply(txs, q))

	q, _ = Normalize(Params{Search: "grocery shopping"}, opts)
	assert.Len(t, Apply(txs, q), 1)
}

func TestQueryKey(t *testing.T) {
	a := Query{Search: "Sal", Category: AllCategories, Sort: DefaultSort}
	b := Query{Search: "sal", Category: AllCategories, Sort: DefaultSort}
	assert.Equal(t, a.Key(), b.Key())

	c := b
	c.Sort = c.Sort.Toggle(ColumnDate)
	assert.NotEqual(t, b.Key(), c.Key())
}

func TestColumnLabel(t *testing.T) {
	assert.Equal(t, "Description", ColumnDescription.Label())
}
