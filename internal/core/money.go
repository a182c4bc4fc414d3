// Package core provides money formatting helpers.
//
// Amounts are shopspring decimals; formatting mirrors what the dashboard
// displays: fixed two decimals in the table, the shortest representation
// in chart labels and thousands grouping in the summary panel.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

var printer = message.NewPrinter(language.English)

// FormatAmount renders |d| with two decimals, e.g. -120.5 -> "$120.50".
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.Abs().StringFixed(2)
}

// FormatPlain renders |d| in its shortest form, e.g. 120.5 -> "$120.5", 1500 -> "$1500".
func FormatPlain(d decimal.Decimal) string {
	return "$" + d.Abs().String()
}

// FormatGrouped renders d with thousands separators, e.g. 16700 -> "$16,700".
// Fractional cents are kept only when present.
func FormatGrouped(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs()
	s := "$" + printer.Sprintf("%d", d.IntPart())
	if frac := d.Sub(decimal.NewFromInt(d.IntPart())); !frac.IsZero() {
		s += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatPercent renders a 0..1 ratio as "(50.00%)".
func FormatPercent(ratio decimal.Decimal) string {
	return "(" + ratio.Mul(hundred).StringFixed(2) + "%)"
}
