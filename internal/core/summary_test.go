package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeFixture(t *testing.T) {
	s := Summarize(FixtureAggregates().Monthly)
	assert.Equal(t, "$16,700", FormatGrouped(s.TotalIncome))
	assert.Equal(t, "$12,400", FormatGrouped(s.TotalExpenses))
	assert.Equal(t, "$4,300", FormatGrouped(s.NetSavings))
}

func TestFixtureAggregatesValid(t *testing.T) {
	require.NoError(t, FixtureAggregates().Validate())
	assert.True(t, CategoryTotal(FixtureAggregates().Categories).Equal(dec("2900")))

	bad := FixtureAggregates()
	bad.Categories[0].Value = dec("0")
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAggregate)
}

func TestDeriveAggregates(t *testing.T) {
	agg := DeriveAggregates(FixtureTransactions())

	names := make([]string, 0, len(agg.Categories))
	for _, c := range agg.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Food", "Utilities", "Entertainment", "Transportation", "Shopping", "Health"}, names)
	assert.True(t, agg.Categories[0].Value.Equal(dec("185.80")), "food total %s", agg.Categories[0].Value)

	require.Len(t, agg.Monthly, 1)
	assert.Equal(t, "Jun", agg.Monthly[0].Name)
	assert.True(t, agg.Monthly[0].Income.Equal(dec("3000")))
	assert.True(t, agg.Monthly[0].Expenses.Equal(dec("474.99")))
}

func TestDeriveAggregatesChronological(t *testing.T) {
	txs := []Transaction{
		{ID: 1, Date: "2024-02-10", Description: "b", Amount: dec("10"), Category: "Income"},
		{ID: 2, Date: "2023-12-01", Description: "a", Amount: dec("-5"), Category: "Food"},
		{ID: 3, Date: "2024-01-03", Description: "c", Amount: dec("-2"), Category: "Food"},
	}
	agg := DeriveAggregates(txs)
	require.Len(t, agg.Monthly, 3)
	assert.Equal(t, "Dec 2023", agg.Monthly[0].Name)
	assert.Equal(t, "Jan 2024", agg.Monthly[1].Name)
	assert.Equal(t, "Feb 2024", agg.Monthly[2].Name)
}

func TestCompareAggregatesSameMonthAcrossYears(t *testing.T) {
	txs := []Transaction{
		{ID: 1, Date: "2023-06-10", Description: "a", Amount: dec("-100"), Category: "Food"},
		{ID: 2, Date: "2024-06-10", Description: "b", Amount: dec("-40"), Category: "Food"},
	}
	derived := DeriveAggregates(txs)
	require.Len(t, derived.Monthly, 2)
	assert.True(t, derived.Monthly[0].Expenses.Equal(dec("100")))
	assert.True(t, derived.Monthly[1].Expenses.Equal(dec("40")))
	assert.Empty(t, CompareAggregates(derived, derived))

	stored := Aggregates{
		Categories: derived.Categories,
		Monthly:    []MonthlyAggregate{{Name: "Jun", Expenses: dec("40")}},
	}
	mm := CompareAggregates(stored, derived)
	var names []string
	for _, m := range mm {
		assert.Equal(t, "month", m.Kind)
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"Jun", "Jun 2023", "Jun 2024"}, names)
}

func TestCompareAggregates(t *testing.T) {
	derived := DeriveAggregates(FixtureTransactions())
	assert.Empty(t, CompareAggregates(derived, derived))

	mm := CompareAggregates(FixtureAggregates(), derived)
	assert.NotEmpty(t, mm)

	var housing bool
	for _, m := range mm {
		if m.Kind == "category" && m.Name == "Housing" {
			housing = true
			assert.Equal(t, "1500", m.Stored)
		}
	}
	assert.True(t, housing)
}
