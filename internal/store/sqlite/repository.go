// Package sqlite serves the dashboard data from a SQLite database that
// embedded migrations create and seed. The data is read once on Open.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"findash/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db      *sql.DB
	version uint
	txs     []core.Transaction
	agg     core.Aggregates
}

// Open migrates the database at dbPath and loads its contents.
func Open(ctx context.Context, dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	version, err := Migrate(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Repository{db: db, version: version}
	if err := r.load(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Dashboard data loaded from SQLite",
		"path", dbPath,
		"schema_version", version,
		"transactions", len(r.txs),
		"categories", len(r.agg.Categories),
		"months", len(r.agg.Monthly))
	return r, nil
}

func (r *Repository) load(ctx context.Context) error {
	var (
		txRows  []transactionRow
		catRows []categoryRow
		monRows []monthlyRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txRows, err = queryTransactions(gctx, r.db)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		catRows, err = queryCategories(gctx, r.db)
		if err != nil {
			return fmt.Errorf("list category aggregates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		monRows, err = queryMonthly(gctx, r.db)
		if err != nil {
			return fmt.Errorf("list monthly aggregates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	txs := make([]core.Transaction, 0, len(txRows))
	for _, row := range txRows {
		amt, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return fmt.Errorf("transaction %d amount %q: %w", row.ID, row.Amount, core.ErrInvalidAmount)
		}
		txs = append(txs, core.Transaction{
			ID:          row.ID,
			Date:        row.Date,
			Description: row.Description,
			Amount:      amt,
			Category:    row.Category,
			Bank:        row.Bank,
		})
	}
	if err := core.ValidateTransactions(txs); err != nil {
		return fmt.Errorf("validate transactions: %w", err)
	}

	var agg core.Aggregates
	for _, row := range catRows {
		v, err := decimal.NewFromString(row.Value)
		if err != nil {
			return fmt.Errorf("category %q value %q: %w", row.Name, row.Value, core.ErrInvalidAggregate)
		}
		agg.Categories = append(agg.Categories, core.CategoryAggregate{Name: row.Name, Value: v})
	}
	for _, row := range monRows {
		inc, err := decimal.NewFromString(row.Income)
		if err != nil {
			return fmt.Errorf("month %q income %q: %w", row.Name, row.Income, core.ErrInvalidAggregate)
		}
		exp, err := decimal.NewFromString(row.Expenses)
		if err != nil {
			return fmt.Errorf("month %q expenses %q: %w", row.Name, row.Expenses, core.ErrInvalidAggregate)
		}
		agg.Monthly = append(agg.Monthly, core.MonthlyAggregate{Name: row.Name, Income: inc, Expenses: exp})
	}
	if err := agg.Validate(); err != nil {
		return fmt.Errorf("validate aggregates: %w", err)
	}

	r.txs, r.agg = txs, agg
	return nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SchemaVersion is the migration version the database was opened at.
func (r *Repository) SchemaVersion() uint { return r.version }

// ListTransactions implements store.TransactionReader
func (r *Repository) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), r.txs...), nil
}

// ReadAggregates implements store.AggregateReader
func (r *Repository) ReadAggregates(_ context.Context) (core.Aggregates, error) {
	return core.Aggregates{
		Categories: append([]core.CategoryAggregate(nil), r.agg.Categories...),
		Monthly:    append([]core.MonthlyAggregate(nil), r.agg.Monthly...),
	}, nil
}
