// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wneessen/wxmaps/internal/plan"
	"github.com/wneessen/wxmaps/internal/shapes"
)

// background fills the whole data area.
type background struct {
	color color.Color
}

func (b background) Plot(c draw.Canvas, _ *plot.Plot) {
	c.FillPolygon(b.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y}, {X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y}, {X: c.Min.X, Y: c.Max.Y},
	})
}

// polygons fills every ring of a layer.
type polygons struct {
	layer *shapes.Layer
	color color.Color
}

func (p polygons) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, ring := range p.layer.Parts {
		pts := make([]vg.Point, len(ring))
		for i, pt := range ring {
			pts[i] = vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}
		c.FillPolygon(p.color, c.ClipPolygonXY(pts))
	}
}

// outlines strokes every part of a layer.
type outlines struct {
	layer *shapes.Layer
	style draw.LineStyle
}

func (o outlines) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, part := range o.layer.Parts {
		pts := make([]vg.Point, len(part))
		for i, pt := range part {
			pts[i] = vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}
		c.StrokeLines(o.style, c.ClipLinesXY(pts)...)
	}
}

func lineStyle(l plan.Line) draw.LineStyle {
	sty := draw.LineStyle{Color: l.Color, Width: vg.Points(l.Width)}
	switch l.Dash {
	case plan.DashDashed:
		sty.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	case plan.DashDotted:
		sty.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	}
	return sty
}
