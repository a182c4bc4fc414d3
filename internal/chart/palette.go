// Package chart lays out the dashboard's SVG charts: the category donut with
// its hover annotation and the monthly income/expense bars.
package chart

// Palette colors pie slices, cycled by slice index.
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8"}

const (
	IncomeFill   = "#8884d8"
	ExpensesFill = "#82ca9d"

	labelValueFill   = "#333"
	labelPercentFill = "#999"
)

// SliceColor returns the palette color for slice i.
func SliceColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Theme selects page colors. It never changes chart geometry.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme defaults anything unknown to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Next is the theme the toggle switches to.
func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Colors are the theme-dependent chart colors.
type Colors struct {
	Axis       string
	Grid       string
	Text       string
	IncomeBar  string
	ExpenseBar string
}

// ColorsFor returns the axis and text colors for a theme. Bar fills are the
// same in both themes.
func ColorsFor(t Theme) Colors {
	c := Colors{Axis: "#666", Grid: "#e5e7eb", Text: "#111827", IncomeBar: IncomeFill, ExpenseBar: ExpensesFill}
	if t == ThemeDark {
		c.Axis, c.Grid, c.Text = "#9ca3af", "#374151", "#f9fafb"
	}
	return c
}
