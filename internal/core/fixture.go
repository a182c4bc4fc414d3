package core

import "github.com/shopspring/decimal"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// FixtureTransactions returns the dashboard's built-in transaction set.
// Each call returns a fresh slice.
func FixtureTransactions() []Transaction {
	return []Transaction{
		{ID: 1, Date: "2023-06-01", Description: "Grocery Shopping", Amount: dec("-120.50"), Category: "Food"},
		{ID: 2, Date: "2023-06-02", Description: "Salary Deposit", Amount: dec("3000"), Category: "Income"},
		{ID: 3, Date: "2023-06-03", Description: "Electric Bill", Amount: dec("-85.20"), Category: "Utilities"},
		{ID: 4, Date: "2023-06-04", Description: "Movie Night", Amount: dec("-30"), Category: "Entertainment"},
		{ID: 5, Date: "2023-06-05", Description: "Gas Station", Amount: dec("-45.00"), Category: "Transportation"},
		{ID: 6, Date: "2023-06-06", Description: "Online Shopping", Amount: dec("-78.99"), Category: "Shopping"},
		{ID: 7, Date: "2023-06-07", Description: "Restaurant Dinner", Amount: dec("-65.30"), Category: "Food"},
		{ID: 8, Date: "2023-06-08", Description: "Gym Membership", Amount: dec("-50.00"), Category: "Health"},
	}
}

// FixtureAggregates returns the chart projections shipped with the dashboard.
// They are not derived from FixtureTransactions.
func FixtureAggregates() Aggregates {
	return Aggregates{
		Categories: []CategoryAggregate{
			{Name: "Housing", Value: dec("1500")},
			{Name: "Food", Value: dec("500")},
			{Name: "Transportation", Value: dec("300")},
			{Name: "Entertainment", Value: dec("200")},
			{Name: "Utilities", Value: dec("400")},
		},
		Monthly: []MonthlyAggregate{
			{Name: "Jan", Income: dec("4000"), Expenses: dec("3000")},
			{Name: "Feb", Income: dec("4200"), Expenses: dec("3100")},
			{Name: "Mar", Income: dec("4100"), Expenses: dec("2900")},
			{Name: "Apr", Income: dec("4400"), Expenses: dec("3400")},
		},
	}
}
