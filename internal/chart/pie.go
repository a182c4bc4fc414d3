package chart

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"findash/internal/core"
)

// Pie geometry used by the dashboard.
const (
	PieWidth       = 400
	PieHeight      = 300
	PieInnerRadius = 60
	PieOuterRadius = 80
)

// Payload is the datum behind a slice.
type Payload struct {
	Name    string
	Value   decimal.Decimal
	Percent decimal.Decimal // 0..1
}

// Slice is one laid-out pie sector. Angles are in degrees.
type Slice struct {
	Index       int
	Center      Point
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	MidAngle    float64
	EndAngle    float64
	Fill        string
	Payload     Payload
}

// LayoutPie splits 0..360 degrees among the aggregates proportionally to
// their values, counterclockwise from 3 o'clock.
func LayoutPie(cats []core.CategoryAggregate, center Point, inner, outer float64) []Slice {
	total := core.CategoryTotal(cats)
	if !total.IsPositive() {
		return nil
	}
	slices := make([]Slice, 0, len(cats))
	start := 0.0
	for i, c := range cats {
		pct := c.Value.Div(total)
		sweep := pct.InexactFloat64() * 360
		end := start + sweep
		slices = append(slices, Slice{
			Index:       i,
			Center:      center,
			InnerRadius: inner,
			OuterRadius: outer,
			StartAngle:  start,
			MidAngle:    (start + end) / 2,
			EndAngle:    end,
			Fill:        SliceColor(i),
			Payload:     Payload{Name: c.Name, Value: c.Value, Percent: pct},
		})
		start = end
	}
	return slices
}

// Path returns the SVG path of the donut sector.
func (s Slice) Path() string {
	end := s.EndAngle
	if end-s.StartAngle >= 360 {
		end = s.StartAngle + 359.999
	}
	large := "0"
	if end-s.StartAngle > 180 {
		large = "1"
	}
	os := Polar(s.Center, s.OuterRadius, s.StartAngle)
	oe := Polar(s.Center, s.OuterRadius, end)
	ie := Polar(s.Center, s.InnerRadius, end)
	is := Polar(s.Center, s.InnerRadius, s.StartAngle)
	ro, ri := num(s.OuterRadius), num(s.InnerRadius)

	var b strings.Builder
	b.WriteString("M" + num(os.X) + "," + num(os.Y))
	b.WriteString("A" + ro + "," + ro + ",0," + large + ",0," + num(oe.X) + "," + num(oe.Y))
	b.WriteString("L" + num(ie.X) + "," + num(ie.Y))
	b.WriteString("A" + ri + "," + ri + ",0," + large + ",1," + num(is.X) + "," + num(is.Y))
	b.WriteString("Z")
	return b.String()
}

// Text is an SVG text element.
type Text struct {
	X, Y    float64
	DY      float64
	Anchor  string
	Fill    string
	Content string
}

func (t Text) XAttr() string  { return num(t.X) }
func (t Text) YAttr() string  { return num(t.Y) }
func (t Text) DYAttr() string { return num(t.DY) }

// ActiveLabel is the annotation drawn for the hovered slice: the category
// name in the donut hole and a bent connector to the value and percentage.
type ActiveLabel struct {
	Fill      string
	Name      Text
	Start     Point
	Bend      Point
	End       Point
	DotRadius float64
	Value     Text
	Percent   Text
}

// Connector returns the SVG path from the slice edge to the label.
func (a ActiveLabel) Connector() string {
	return "M" + num(a.Start.X) + "," + num(a.Start.Y) +
		"L" + num(a.Bend.X) + "," + num(a.Bend.Y) +
		"L" + num(a.End.X) + "," + num(a.End.Y)
}

func (a ActiveLabel) DotX() string { return num(a.End.X) }
func (a ActiveLabel) DotY() string { return num(a.End.Y) }

// Label computes the annotation geometry for s. The connector leaves the
// outer edge at the mid angle, bends 30 units out and runs 22 units
// horizontally away from the center.
func Label(s Slice) ActiveLabel {
	sin := math.Sin(-Radian * s.MidAngle)
	cos := math.Cos(-Radian * s.MidAngle)
	cx, cy := s.Center.X, s.Center.Y

	sx := cx + (s.OuterRadius+10)*cos
	sy := cy + (s.OuterRadius+10)*sin
	mx := cx + (s.OuterRadius+30)*cos
	my := cy + (s.OuterRadius+30)*sin
	dir, anchor := 1.0, "start"
	if cos < 0 {
		dir, anchor = -1.0, "end"
	}
	ex := mx + dir*22
	ey := my

	return ActiveLabel{
		Fill:      s.Fill,
		Name:      Text{X: cx, Y: cy, DY: 8, Anchor: "middle", Fill: s.Fill, Content: s.Payload.Name},
		Start:     Point{sx, sy},
		Bend:      Point{mx, my},
		End:       Point{ex, ey},
		DotRadius: 2,
		Value: Text{
			X: ex + dir*12, Y: ey, Anchor: anchor, Fill: labelValueFill,
			Content: core.FormatPlain(s.Payload.Value),
		},
		Percent: Text{
			X: ex + dir*12, Y: ey, DY: 18, Anchor: anchor, Fill: labelPercentFill,
			Content: core.FormatPercent(s.Payload.Percent),
		},
	}
}

// PieChart is everything the pie template draws.
type PieChart struct {
	Width, Height int
	Slices        []Slice
	Active        int
	Label         *ActiveLabel
}

// BuildPie lays out the dashboard pie and annotates slice active. An index
// outside the slices falls back to 0.
func BuildPie(cats []core.CategoryAggregate, active int) PieChart {
	pc := PieChart{Width: PieWidth, Height: PieHeight}
	pc.Slices = LayoutPie(cats, Point{PieWidth / 2, PieHeight / 2}, PieInnerRadius, PieOuterRadius)
	if len(pc.Slices) == 0 {
		return pc
	}
	if active < 0 || active >= len(pc.Slices) {
		active = 0
	}
	pc.Active = active
	l := Label(pc.Slices[active])
	pc.Label = &l
	return pc
}
