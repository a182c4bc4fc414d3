// Package export writes table views as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"findash/internal/core"
	"findash/internal/ledger"
)

const (
	TransactionsSheet = "Transactions"
	CategoriesSheet   = "Categories"
	MonthlySheet      = "Monthly"

	// ContentType is the MIME type of the produced workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []any{"Date", "Description", "Amount", "Category"}

// Workbook builds a workbook with the view rows and the chart aggregates.
// The caller must Close it.
func Workbook(txs []core.Transaction, q ledger.Query, agg core.Aggregates) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), TransactionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeTransactions(f, txs, q); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeAggregates(f, agg); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write streams the workbook for txs to w.
func Write(w io.Writer, txs []core.Transaction, q ledger.Query, agg core.Aggregates) error {
	f, err := Workbook(txs, q, agg)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook for txs to path.
func SaveAs(path string, txs []core.Transaction, q ledger.Query, agg core.Aggregates) error {
	f, err := Workbook(txs, q, agg)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeTransactions(f *excelize.File, txs []core.Transaction, q ledger.Query) error {
	sheet := TransactionsSheet
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return err
	}

	for i, t := range txs {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{t.Date, t.Description, nil, t.Category}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellDefault(sheet, fmt.Sprintf("C%d", row), t.Amount.StringFixed(2)); err != nil {
			return fmt.Errorf("write amount row %d: %w", row, err)
		}
	}

	last := len(txs) + 1
	if len(txs) > 0 {
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", last), money); err != nil {
			return err
		}
		total := last + 1
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", total), "Net"); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheet, fmt.Sprintf("C%d", total), fmt.Sprintf("SUM(C2:C%d)", last)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("B%d", total), fmt.Sprintf("C%d", total), bold); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}

	// Record the view the rows came from.
	meta := []any{"Sorted by", string(q.Sort.Column), string(q.Sort.Direction), "Category", q.Category, "Search", q.Search}
	if err := f.SetSheetRow(sheet, "F1", &meta); err != nil {
		return fmt.Errorf("write view info: %w", err)
	}
	return nil
}

func writeAggregates(f *excelize.File, agg core.Aggregates) error {
	if _, err := f.NewSheet(CategoriesSheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", CategoriesSheet, err)
	}
	if err := f.SetSheetRow(CategoriesSheet, "A1", &[]any{"Category", "Value"}); err != nil {
		return err
	}
	for i, c := range agg.Categories {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(CategoriesSheet, cell, &[]any{c.Name}); err != nil {
			return err
		}
		if err := setDecimal(f, CategoriesSheet, 2, i+2, c.Value); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(MonthlySheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", MonthlySheet, err)
	}
	if err := f.SetSheetRow(MonthlySheet, "A1", &[]any{"Month", "Income", "Expenses"}); err != nil {
		return err
	}
	for i, m := range agg.Monthly {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(MonthlySheet, cell, &[]any{m.Name}); err != nil {
			return err
		}
		if err := setDecimal(f, MonthlySheet, 2, i+2, m.Income); err != nil {
			return err
		}
		if err := setDecimal(f, MonthlySheet, 3, i+2, m.Expenses); err != nil {
			return err
		}
	}
	return nil
}

// setDecimal stores d as a numeric cell from its exact decimal text.
func setDecimal(f *excelize.File, sheet string, col, row int, d decimal.Decimal) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellDefault(sheet, cell, d.String())
}
