package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/config"
	"findash/internal/core"
	"findash/internal/ledger"
	"findash/internal/store/memory"
)

type failingSource struct{}

func (failingSource) ListTransactions(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("boom")
}

func (failingSource) ReadAggregates(context.Context) (core.Aggregates, error) {
	return core.Aggregates{}, nil
}

func TestLoadFixtureMode(t *testing.T) {
	d, err := Load(context.Background(), memory.NewFixture(), config.AggregatesFixture, nil)
	require.NoError(t, err)

	assert.Len(t, d.Transactions, 8)
	assert.Equal(t, core.FixtureAggregates(), d.Aggregates)
	assert.NotEmpty(t, d.Mismatches, "shipped aggregates are not derived from the shipped transactions")
	assert.Equal(t, "$16,700", core.FormatGrouped(d.Summary.TotalIncome))
	assert.Equal(t, "$12,400", core.FormatGrouped(d.Summary.TotalExpenses))
	assert.Equal(t, "$4,300", core.FormatGrouped(d.Summary.NetSavings))
	assert.Equal(t, ledger.AllCategories, d.Options[0].Value)
}

func TestLoadDerivedMode(t *testing.T) {
	d, err := Load(context.Background(), memory.NewFixture(), config.AggregatesDerived, nil)
	require.NoError(t, err)

	assert.Empty(t, d.Mismatches)
	require.Len(t, d.Aggregates.Monthly, 1)
	assert.Equal(t, "Jun", d.Aggregates.Monthly[0].Name)
	assert.True(t, d.Summary.TotalIncome.Equal(core.FixtureTransactions()[1].Amount))
	assert.Equal(t, "Food", d.Aggregates.Categories[0].Name)
	assert.Equal(t, "185.8", d.Aggregates.Categories[0].Value.String())
}

func TestLoadEmptyDefaultsToFixtureMode(t *testing.T) {
	d, err := Load(context.Background(), memory.NewFixture(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.AggregatesFixture, d.Mode)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(context.Background(), failingSource{}, config.AggregatesFixture, nil)
	assert.ErrorContains(t, err, "list transactions")

	_, err = Load(context.Background(), memory.NewFixture(), "stored", nil)
	assert.Error(t, err)
}

func TestQueryCorrections(t *testing.T) {
	d, err := Load(context.Background(), memory.NewFixture(), config.AggregatesFixture, nil)
	require.NoError(t, err)

	q, fixes := d.Query(ledger.Params{Category: "Travel", Column: "amount"})
	assert.Equal(t, ledger.AllCategories, q.Category)
	assert.Equal(t, ledger.Sort{Column: ledger.ColumnAmount, Direction: ledger.Asc}, q.Sort)
	require.Len(t, fixes, 1)
	assert.Equal(t, "category", fixes[0].Field)
}
