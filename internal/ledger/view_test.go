package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"findash/internal/core"
)

func TestViewDefaults(t *testing.T) {
	v := NewView(core.FixtureTransactions())
	assert.Equal(t, DefaultQuery(), v.Query())
	assert.Equal(t, 0, v.ActiveSlice())
	assert.Len(t, v.Transactions(), 8)
}

func TestViewMemoizesUntilInputsChange(t *testing.T) {
	v := NewView(core.FixtureTransactions())
	v.Transactions()
	v.Transactions()
	assert.Equal(t, 1, v.computes)

	v.SetActiveSlice(3)
	v.Transactions()
	assert.Equal(t, 1, v.computes, "hover does not affect the table")

	v.SetSearch("food")
	assert.Len(t, v.Transactions(), 2)
	assert.Equal(t, 2, v.computes)

	v.SetSearch("food")
	v.Transactions()
	assert.Equal(t, 2, v.computes)

	v.ToggleSort(ColumnAmount)
	v.Transactions()
	assert.Equal(t, 3, v.computes)

	v.SetTransactions(core.FixtureTransactions()[:2])
	assert.Len(t, v.Transactions(), 1)
	assert.Equal(t, 4, v.computes)
}

func TestViewSetters(t *testing.T) {
	v := NewView(core.FixtureTransactions())

	v.SetCategory("Food")
	assert.Equal(t, "Food", v.Query().Category)
	v.SetCategory("Nope")
	assert.Equal(t, AllCategories, v.Query().Category)

	v.ToggleSort(ColumnDescription)
	v.ToggleSort(ColumnDescription)
	assert.Equal(t, Sort{ColumnDescription, Desc}, v.Query().Sort)
	v.ToggleSort("bank")
	assert.Equal(t, Sort{ColumnDescription, Desc}, v.Query().Sort)

	v.SetActiveSlice(-4)
	assert.Equal(t, 0, v.ActiveSlice())
}

func TestViewSortBy(t *testing.T) {
	tests := []struct {
		name string
		want Sort
	}{
		{"default", DefaultSort},
		{"date ascending", Sort{ColumnDate, Asc}},
		{"amount ascending", Sort{ColumnAmount, Asc}},
		{"category descending", Sort{ColumnCategory, Desc}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewView(core.FixtureTransactions())
			v.SortBy(tc.want)
			assert.Equal(t, tc.want, v.Query().Sort)
		})
	}

	v := NewView(core.FixtureTransactions())
	v.SortBy(Sort{Column: "bank", Direction: Asc})
	v.SortBy(Sort{Column: ColumnAmount, Direction: "up"})
	assert.Equal(t, DefaultSort, v.Query().Sort)
}
