// Package report renders the transaction view as a terminal table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"findash/internal/core"
	"findash/internal/ledger"
)

// Options controls the rendered output.
type Options struct {
	Color bool
}

// Net sums the signed amounts of txs.
func Net(txs []core.Transaction) decimal.Decimal {
	var sum decimal.Decimal
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// Signed renders an amount with its sign, e.g. "-$120.50" or "+$3000.00".
func Signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + core.FormatAmount(d)
	}
	return "+" + core.FormatAmount(d)
}

// PrintTransactions writes the view header line, the table and the
// available category filters. total is the size of the unfiltered set.
func PrintTransactions(w io.Writer, txs []core.Transaction, total int, q ledger.Query, opts []ledger.Option, o Options) {
	desc := fmt.Sprintf("Sorted by %s (%s)", q.Sort.Column.Label(), q.Sort.Direction)
	if q.Category != ledger.AllCategories {
		desc += ", category " + q.Category
	}
	if q.Search != "" {
		desc += fmt.Sprintf(", matching %q", q.Search)
	}
	fmt.Fprintf(w, "%d of %d transactions. %s\n\n", len(txs), total, desc)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{}
	for _, c := range ledger.Columns() {
		label := c.Label()
		if c == q.Sort.Column {
			label += sortMarker(q.Sort.Direction)
		}
		header = append(header, label)
	}
	t.AppendHeader(header)

	for _, tx := range txs {
		amount := Signed(tx.Amount)
		if o.Color {
			if tx.IsIncome() {
				amount = text.FgGreen.Sprint(amount)
			} else {
				amount = text.FgRed.Sprint(amount)
			}
		}
		t.AppendRow(table.Row{tx.Date, tx.Description, amount, tx.Category})
	}

	t.AppendSeparator()

	net := Signed(Net(txs))
	if o.Color {
		net = text.Bold.Sprint(net)
	}
	t.AppendFooter(table.Row{"", "Net", net, ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()

	labels := make([]string, 0, len(opts))
	for _, opt := range opts {
		labels = append(labels, opt.Value)
	}
	fmt.Fprintf(w, "\nCategories: %s\n", strings.Join(labels, ", "))
}

func sortMarker(d ledger.Direction) string {
	if d == ledger.Asc {
		return " ↑"
	}
	return " ↓"
}
