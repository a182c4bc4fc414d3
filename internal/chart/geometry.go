package chart

import (
	"math"
	"strconv"
)

// Radian converts degrees to radians.
const Radian = math.Pi / 180

// Point is an SVG coordinate.
type Point struct {
	X, Y float64
}

// Polar returns the point at radius r and angle deg around c. Angles grow
// counterclockwise from 3 o'clock; SVG's y axis points down, hence the
// negated angle.
func Polar(c Point, r, deg float64) Point {
	return Point{
		X: c.X + r*math.Cos(-Radian*deg),
		Y: c.Y + r*math.Sin(-Radian*deg),
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
