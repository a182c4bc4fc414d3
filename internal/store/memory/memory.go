package memory

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"findash/internal/core"
)

// Store serves a fixed transaction set and aggregates from memory.
type Store struct {
	txs []core.Transaction
	agg core.Aggregates
}

// New validates and wraps the given data.
func New(txs []core.Transaction, agg core.Aggregates) (*Store, error) {
	if err := core.ValidateTransactions(txs); err != nil {
		return nil, err
	}
	if err := agg.Validate(); err != nil {
		return nil, err
	}
	return &Store{txs: txs, agg: agg}, nil
}

// NewFixture serves the built-in dashboard data.
func NewFixture() *Store {
	return &Store{txs: core.FixtureTransactions(), agg: core.FixtureAggregates()}
}

// ListTransactions returns a copy of the transaction set.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), s.txs...), nil
}

// ReadAggregates returns a copy of the aggregates.
func (s *Store) ReadAggregates(_ context.Context) (core.Aggregates, error) {
	return core.Aggregates{
		Categories: append([]core.CategoryAggregate(nil), s.agg.Categories...),
		Monthly:    append([]core.MonthlyAggregate(nil), s.agg.Monthly...),
	}, nil
}

// fixtureFile is the YAML layout accepted by NewFromFile. Amounts are kept
// as strings so they parse exactly.
type fixtureFile struct {
	Transactions []struct {
		ID          int64  `yaml:"id"`
		Date        string `yaml:"date"`
		Description string `yaml:"description"`
		Amount      string `yaml:"amount"`
		Category    string `yaml:"category"`
		Bank        string `yaml:"bank,omitempty"`
	} `yaml:"transactions"`
	Categories []struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	} `yaml:"categories"`
	Monthly []struct {
		Name     string `yaml:"name"`
		Income   string `yaml:"income"`
		Expenses string `yaml:"expenses"`
	} `yaml:"monthly"`
}

// NewFromFile loads a YAML fixture. Sections left out of the file fall back
// to the built-in fixture.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture document.
func Parse(data []byte) (*Store, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture file: %w", err)
	}

	txs := core.FixtureTransactions()
	if f.Transactions != nil {
		txs = make([]core.Transaction, 0, len(f.Transactions))
		for i, t := range f.Transactions {
			amt, err := parseAmount(t.Amount)
			if err != nil {
				return nil, fmt.Errorf("transaction #%d: %w", i, err)
			}
			txs = append(txs, core.Transaction{
				ID: t.ID, Date: t.Date, Description: t.Description,
				Amount: amt, Category: t.Category, Bank: t.Bank,
			})
		}
	}

	agg := core.FixtureAggregates()
	if f.Categories != nil {
		agg.Categories = make([]core.CategoryAggregate, 0, len(f.Categories))
		for _, c := range f.Categories {
			v, err := parseAmount(c.Value)
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", c.Name, err)
			}
			agg.Categories = append(agg.Categories, core.CategoryAggregate{Name: c.Name, Value: v})
		}
	}
	if f.Monthly != nil {
		agg.Monthly = make([]core.MonthlyAggregate, 0, len(f.Monthly))
		for _, m := range f.Monthly {
			inc, err := parseAmount(m.Income)
			if err != nil {
				return nil, fmt.Errorf("month %q income: %w", m.Name, err)
			}
			exp, err := parseAmount(m.Expenses)
			if err != nil {
				return nil, fmt.Errorf("month %q expenses: %w", m.Name, err)
			}
			agg.Monthly = append(agg.Monthly, core.MonthlyAggregate{Name: m.Name, Income: inc, Expenses: exp})
		}
	}
	return New(txs, agg)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q", core.ErrInvalidAmount, s)
	}
	return d, nil
}
