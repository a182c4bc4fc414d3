package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/core"
)

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 2000.0, NiceStep(1100))
	assert.Equal(t, 1000.0, NiceStep(700))
	assert.Equal(t, 250.0, NiceStep(230))
	assert.Equal(t, 5.0, NiceStep(3))
	assert.Equal(t, 1.0, NiceStep(0))
}

func TestBuildBars(t *testing.T) {
	c := BuildBars(core.FixtureAggregates().Monthly, ThemeLight)
	require.Len(t, c.Groups, 4)
	assert.Equal(t, "Jan", c.Groups[0].Label)

	labels := make([]string, len(c.Ticks))
	for i, tk := range c.Ticks {
		labels[i] = tk.Label
	}
	assert.Equal(t, []string{"0", "2000", "4000", "6000"}, labels)

	inc := c.Groups[3].Bars[0]
	exp := c.Groups[3].Bars[1]
	assert.Equal(t, "income", inc.Series)
	assert.Equal(t, IncomeFill, inc.Fill)
	assert.Equal(t, ExpensesFill, exp.Fill)
	assert.InDelta(t, c.PlotBottom, inc.Y+inc.H, 1e-9)
	assert.Greater(t, inc.H, exp.H)
	assert.Less(t, inc.X, exp.X)
}

func TestBuildBarsThemeOnlyChangesColors(t *testing.T) {
	light := BuildBars(core.FixtureAggregates().Monthly, ThemeLight)
	dark := BuildBars(core.FixtureAggregates().Monthly, ThemeDark)
	assert.Equal(t, light.Groups, dark.Groups)
	assert.Equal(t, light.Ticks, dark.Ticks)
	assert.NotEqual(t, light.Colors.Text, dark.Colors.Text)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("purple"))
	assert.Equal(t, ThemeDark, ThemeLight.Next())
	assert.Equal(t, "#0088FE", SliceColor(5))
}
