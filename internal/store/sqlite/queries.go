package sqlite

import (
	"context"
	"database/sql"
)

const listTransactions = `SELECT id, transaction_date, description, amount, category, bank
FROM transactions
ORDER BY id`

type transactionRow struct {
	ID          int64
	Date        string
	Description string
	Amount      string
	Category    string
	Bank        string
}

func queryTransactions(ctx context.Context, db *sql.DB) ([]transactionRow, error) {
	rows, err := db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []transactionRow
	for rows.Next() {
		var i transactionRow
		if err := rows.Scan(&i.ID, &i.Date, &i.Description, &i.Amount, &i.Category, &i.Bank); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listCategoryAggregates = `SELECT name, value FROM category_aggregates ORDER BY position`

type categoryRow struct {
	Name  string
	Value string
}

func queryCategories(ctx context.Context, db *sql.DB) ([]categoryRow, error) {
	rows, err := db.QueryContext(ctx, listCategoryAggregates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []categoryRow
	for rows.Next() {
		var i categoryRow
		if err := rows.Scan(&i.Name, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listMonthlyAggregates = `SELECT name, income, expenses FROM monthly_aggregates ORDER BY position`

type monthlyRow struct {
	Name     string
	Income   string
	Expenses string
}

func queryMonthly(ctx context.Context, db *sql.DB) ([]monthlyRow, error) {
	rows, err := db.QueryContext(ctx, listMonthlyAggregates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []monthlyRow
	for rows.Next() {
		var i monthlyRow
		if err := rows.Scan(&i.Name, &i.Income, &i.Expenses); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
