package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"findash/internal/core"
	"findash/internal/ledger"
)

func TestPrintTransactions(t *testing.T) {
	txs := core.FixtureTransactions()
	q := ledger.DefaultQuery()
	q.Category = "Food"
	view := ledger.Apply(txs, q)

	var buf bytes.Buffer
	PrintTransactions(&buf, view, len(txs), q, ledger.CategoryOptions(txs), Options{})
	out := buf.String()

	assert.Contains(t, out, "2 of 8 transactions. Sorted by Date (desc), category Food")
	assert.Contains(t, out, "Date ↓")
	assert.Contains(t, out, "Restaurant Dinner")
	assert.Contains(t, out, "-$120.50")
	assert.Contains(t, out, "-$185.80")
	assert.NotContains(t, out, "Salary Deposit")
	assert.Contains(t, out, "Categories: all, Food, Income, Utilities, Entertainment, Transportation, Shopping, Health")
	assert.Less(t, strings.Index(out, "Restaurant Dinner"), strings.Index(out, "Grocery Shopping"))
	assert.Contains(t, out, "╭")
}

func TestPrintTransactionsSearchIsQuoted(t *testing.T) {
	txs := core.FixtureTransactions()
	q := ledger.DefaultQuery()
	q.Search = "shopping "

	var buf bytes.Buffer
	PrintTransactions(&buf, ledger.Apply(txs, q), len(txs), q, nil, Options{})

	assert.Contains(t, buf.String(), `0 of 8 transactions. Sorted by Date (desc), matching "shopping "`)
}

func TestNetAndSigned(t *testing.T) {
	txs := core.FixtureTransactions()
	assert.Equal(t, "+$2525.01", Signed(Net(txs)))
	assert.Equal(t, "+$0.00", Signed(Net(nil)))
}
