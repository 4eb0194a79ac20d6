// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wneessen/wxmaps/internal/units"
	"github.com/wneessen/wxmaps/internal/weather"
)

// WindStyle selects how wind is drawn on the wind product.
type WindStyle int

const (
	Barbs WindStyle = iota
	Vectors
)

const (
	calmKnots     = 2.5
	barbLength    = 7.0
	vectorPerKnot = 0.7
	maxVector     = 18.0
	// barbSpacing is the distance between barb ticks along the staff, in points.
	barbSpacing = 1.4
)

// windGlyphs draws barbs or arrows at decimated grid points. Multiplying u and v by knots yields
// knots.
type windGlyphs struct {
	grid  weather.Grid
	u, v  weather.Field
	knots float64
	step  int
	style WindStyle
	color color.Color
	scale float64
}

func newWindGlyphs(grid weather.Grid, u, v weather.Field) (windGlyphs, error) {
	knots, err := units.KnotsFactor(u.Units)
	if err != nil {
		return windGlyphs{}, err
	}
	if v.Units != u.Units {
		return windGlyphs{}, fmt.Errorf("wind components in %s and %s", u.Units, v.Units)
	}
	return windGlyphs{grid: grid, u: u, v: v, knots: knots}, nil
}

func (w windGlyphs) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Color: w.color, Width: vg.Points(0.6 * w.scale)}
	rows, cols := w.grid.Dims()
	for r := w.step / 2; r < rows; r += w.step {
		for col := w.step / 2; col < cols; col += w.step {
			u, v := w.u.At(r, col)*w.knots, w.v.At(r, col)*w.knots
			if math.IsNaN(u) || math.IsNaN(v) {
				continue
			}
			pt := vg.Point{X: trX(w.grid.Lons[col]), Y: trY(w.grid.Lats[r])}
			if !c.Contains(pt) {
				continue
			}
			if w.style == Vectors {
				w.arrow(c, sty, pt, u, v)
				continue
			}
			w.barb(c, sty, pt, u, v)
		}
	}
}

func (w windGlyphs) arrow(c draw.Canvas, sty draw.LineStyle, pt vg.Point, u, v float64) {
	speed := math.Hypot(u, v)
	if speed == 0 {
		return
	}
	length := math.Min(maxVector, speed*vectorPerKnot) * w.scale
	dx, dy := u/speed, v/speed
	tip := vg.Point{X: pt.X + vg.Points(dx*length), Y: pt.Y + vg.Points(dy*length)}
	c.StrokeLine2(sty, pt.X, pt.Y, tip.X, tip.Y)
	head := 2.5 * w.scale
	for _, a := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := dx*math.Cos(a) - dy*math.Sin(a)
		hy := dx*math.Sin(a) + dy*math.Cos(a)
		c.StrokeLine2(sty, tip.X, tip.Y, tip.X+vg.Points(hx*head), tip.Y+vg.Points(hy*head))
	}
}

// barb draws a staff pointing into the wind with pennants for 50 kt, full ticks for 10 kt and half
// ticks for 5 kt.
func (w windGlyphs) barb(c draw.Canvas, sty draw.LineStyle, pt vg.Point, u, v float64) {
	knots := math.Hypot(u, v)
	if knots < calmKnots {
		c.DrawGlyph(draw.GlyphStyle{Color: w.color, Radius: vg.Points(1.2 * w.scale), Shape: draw.RingGlyph{}}, pt)
		return
	}
	// Unit vector towards where the wind blows from, and its perpendicular.
	dx, dy := -u/knots, -v/knots
	px, py := -dy, dx

	length := barbLength * w.scale
	at := func(along, across float64) vg.Point {
		return vg.Point{
			X: pt.X + vg.Points(dx*along+px*across),
			Y: pt.Y + vg.Points(dy*along+py*across),
		}
	}
	tip := at(length, 0)
	c.StrokeLine2(sty, pt.X, pt.Y, tip.X, tip.Y)

	pennants, full, half := barbCounts(knots)
	tick := 2.8 * w.scale
	spacing := barbSpacing * w.scale
	pos := length
	for i := 0; i < pennants; i++ {
		c.FillPolygon(w.color, []vg.Point{at(pos, 0), at(pos-spacing, tick), at(pos-spacing, 0)})
		pos -= spacing * 1.3
	}
	for i := 0; i < full; i++ {
		end := at(pos+spacing*0.5, tick)
		start := at(pos, 0)
		c.StrokeLine2(sty, start.X, start.Y, end.X, end.Y)
		pos -= spacing
	}
	if half {
		if pennants == 0 && full == 0 {
			pos -= spacing
		}
		end := at(pos+spacing*0.25, tick/2)
		start := at(pos, 0)
		c.StrokeLine2(sty, start.X, start.Y, end.X, end.Y)
	}
}

// barbCounts returns the pennants, full and half ticks of a speed in knots.
func barbCounts(knots float64) (pennants, full int, half bool) {
	rounded := int(5 * math.Round(knots/5))
	pennants = rounded / 50
	rest := rounded % 50
	return pennants, rest / 10, rest%10 >= 5
}
