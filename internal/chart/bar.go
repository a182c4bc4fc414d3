package chart

import (
	"math"

	"findash/internal/core"
)

// Bar chart geometry used by the dashboard.
const (
	BarWidth      = 400
	BarHeight     = 300
	barMarginLeft = 56
	barMarginTop  = 10
	barMarginRt   = 10
	barMarginBot  = 50
	barTickCount  = 4
)

// Bar is one rectangle.
type Bar struct {
	X, Y, W, H float64
	Fill       string
	Series     string
	Value      string
}

func (b Bar) XAttr() string { return num(b.X) }
func (b Bar) YAttr() string { return num(b.Y) }
func (b Bar) WAttr() string { return num(b.W) }
func (b Bar) HAttr() string { return num(b.H) }

// BarGroup is the pair of bars for one month.
type BarGroup struct {
	Label  string
	LabelX float64
	Bars   []Bar
}

func (g BarGroup) LabelXAttr() string { return num(g.LabelX) }

// Tick is a y-axis gridline.
type Tick struct {
	Y     float64
	Label string
}

func (t Tick) YAttr() string { return num(t.Y) }

// BarChart is everything the bar template draws.
type BarChart struct {
	Width, Height int
	PlotLeft      float64
	PlotRight     float64
	PlotTop       float64
	PlotBottom    float64
	Groups        []BarGroup
	Ticks         []Tick
	Colors        Colors
}

func (c BarChart) PlotLeftAttr() string   { return num(c.PlotLeft) }
func (c BarChart) PlotRightAttr() string  { return num(c.PlotRight) }
func (c BarChart) PlotBottomAttr() string { return num(c.PlotBottom) }

// NiceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func NiceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// BuildBars lays out grouped income/expense bars per month.
func BuildBars(monthly []core.MonthlyAggregate, theme Theme) BarChart {
	colors := ColorsFor(theme)
	c := BarChart{
		Width: BarWidth, Height: BarHeight,
		PlotLeft: barMarginLeft, PlotRight: BarWidth - barMarginRt,
		PlotTop: barMarginTop, PlotBottom: BarHeight - barMarginBot,
		Colors: colors,
	}

	maxV := 0.0
	for _, m := range monthly {
		maxV = math.Max(maxV, m.Income.InexactFloat64())
		maxV = math.Max(maxV, m.Expenses.InexactFloat64())
	}
	step := NiceStep(maxV / barTickCount)
	top := step * math.Max(1, math.Ceil(maxV/step))
	plotH := c.PlotBottom - c.PlotTop
	scale := func(v float64) float64 { return plotH * v / top }

	for v := 0.0; v <= top+step/2; v += step {
		c.Ticks = append(c.Ticks, Tick{Y: c.PlotBottom - scale(v), Label: num(v)})
	}

	if len(monthly) == 0 {
		return c
	}
	band := (c.PlotRight - c.PlotLeft) / float64(len(monthly))
	barW := band * 0.35
	for i, m := range monthly {
		x0 := c.PlotLeft + band*float64(i)
		g := BarGroup{Label: m.Name, LabelX: x0 + band/2}
		for j, s := range []struct {
			name string
			v    float64
			raw  string
			fill string
		}{
			{"income", m.Income.InexactFloat64(), m.Income.String(), colors.IncomeBar},
			{"expenses", m.Expenses.InexactFloat64(), m.Expenses.String(), colors.ExpenseBar},
		} {
			h := scale(s.v)
			g.Bars = append(g.Bars, Bar{
				X:      x0 + band*0.15 + float64(j)*barW,
				Y:      c.PlotBottom - h,
				W:      barW,
				H:      h,
				Fill:   s.fill,
				Series: s.name,
				Value:  s.raw,
			})
		}
		c.Groups = append(c.Groups, g)
	}
	return c
}
