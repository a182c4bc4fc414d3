package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"findash/internal/core"
	"findash/internal/ledger"
)

func TestWriteTransactionsWorkbook(t *testing.T) {
	q := ledger.DefaultQuery()
	q.Category = "Food"
	txs := ledger.Apply(core.FixtureTransactions(), q)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, txs, q, core.FixtureAggregates()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TransactionsSheet, CategoriesSheet, MonthlySheet}, f.GetSheetList())

	rows, err := f.GetRows(TransactionsSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, []string{"Date", "Description", "Amount", "Category"}, rows[0][:4])
	assert.Equal(t, "2023-06-07", rows[1][0])
	assert.Equal(t, "Restaurant Dinner", rows[1][1])
	assert.Equal(t, "Grocery Shopping", rows[2][1])
	assert.Equal(t, "Net", rows[3][1])

	raw, err := f.GetCellValue(TransactionsSheet, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-120.50", raw)
	amountType, err := f.GetCellType(TransactionsSheet, "C3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeInlineString, amountType)

	formula, err := f.GetCellFormula(TransactionsSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(C2:C3)", formula)

	category, err := f.GetCellValue(TransactionsSheet, "J1")
	require.NoError(t, err)
	assert.Equal(t, "Food", category)

	cats, err := f.GetRows(CategoriesSheet)
	require.NoError(t, err)
	assert.Len(t, cats, 6)
	assert.Equal(t, "Housing", cats[1][0])
	assert.Equal(t, "1500", cats[1][1])

	months, err := f.GetRows(MonthlySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apr", "4400", "3400"}, months[4])
}

func TestSaveAsEmptyView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.xlsx")
	require.NoError(t, SaveAs(path, nil, ledger.DefaultQuery(), core.Aggregates{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TransactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
