// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wneessen/wxmaps/internal/plan"
	"github.com/wneessen/wxmaps/internal/product"
)

// drawColorbar draws the horizontal scale centred below the map.
func drawColorbar(dc draw.Canvas, mapArea draw.Canvas, p *plan.RenderingPlan, levels product.Levels,
	pal palette.Palette, label string,
) {
	layout := p.Layout
	mapWidth := mapArea.Max.X - mapArea.Min.X
	width := mapWidth * vg.Length(layout.ColorbarShrink)
	height := width / vg.Length(layout.ColorbarAspect)
	room := vg.Points(layout.TickSize*2.5 + layout.ColorbarSize*1.6)

	top := mapArea.Min.Y - (dc.Max.Y-dc.Min.Y)*vg.Length(layout.ColorbarPad)
	left := mapArea.Min.X + (mapWidth-width)/2
	area := draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: left, Y: max(dc.Min.Y, top-height-room)},
			Max: vg.Point{X: left + width, Y: top},
		},
	}

	cb := plot.New()
	cb.HideY()
	cb.BackgroundColor = color.Transparent
	heat := plotter.NewHeatMap(scaleGrid{levels: levels}, pal)
	heat.Min = levels.Min
	heat.Max = levels.Level(levels.Count() - 1)
	cb.Add(heat)

	var ticks plot.ConstantTicks
	for _, v := range levels.Ticks(p.National()) {
		ticks = append(ticks, plot.Tick{Value: v + levels.Step/2, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	cb.X.Tick.Marker = ticks
	cb.X.Tick.Label.Font.Size = vg.Points(layout.TickSize)
	cb.X.Label.Text = label
	cb.X.Label.TextStyle.Font.Size = vg.Points(layout.ColorbarSize)
	cb.X.Min = levels.Min
	cb.X.Max = levels.Level(levels.Count()-1) + levels.Step
	cb.Y.Min, cb.Y.Max = -0.5, 0.5
	cb.X.Padding, cb.Y.Padding = 0, 0

	cb.Draw(area)
}

// drawTitles writes the product and region on the left and the valid time on the right, aligned
// with the map edges.
func drawTitles(dc draw.Canvas, mapArea draw.Canvas, layout plan.FigureLayout, t Text) {
	top := dc.Max.Y - vg.Points(layout.TitleSize*0.6)
	left := textStyle(layout.TitleSize, true, text.XLeft, text.YTop)
	right := textStyle(layout.TitleSize, true, text.XRight, text.YTop)
	leftSub := textStyle(layout.SubtitleSize, false, text.XLeft, text.YTop)
	rightSub := textStyle(layout.SubtitleSize, false, text.XRight, text.YTop)

	sub := top - vg.Points(layout.TitleSize*1.4)
	if t.LeftTitle != "" {
		dc.FillText(left, vg.Point{X: mapArea.Min.X, Y: top}, t.LeftTitle)
	}
	if t.LeftSubtitle != "" {
		dc.FillText(leftSub, vg.Point{X: mapArea.Min.X, Y: sub}, t.LeftSubtitle)
	}
	if t.RightTitle != "" {
		dc.FillText(right, vg.Point{X: mapArea.Max.X, Y: top}, t.RightTitle)
	}
	if t.RightSubtitle != "" {
		dc.FillText(rightSub, vg.Point{X: mapArea.Max.X, Y: sub}, t.RightSubtitle)
	}
}

// drawSignature writes the attribution in a framed box anchored at its lower left corner.
func drawSignature(dc draw.Canvas, layout plan.FigureLayout, signature string) {
	if signature == "" {
		return
	}
	sty := textStyle(layout.SignatureSize, true, text.XLeft, text.YBottom)
	pad := vg.Points(layout.SignatureSize * 0.4)
	origin := vg.Point{
		X: dc.Min.X + (dc.Max.X-dc.Min.X)*vg.Length(layout.SignatureX),
		Y: dc.Min.Y + (dc.Max.Y-dc.Min.Y)*vg.Length(layout.SignatureY),
	}
	w, h := sty.Width(signature), sty.Height(signature)
	box := []vg.Point{
		origin,
		{X: origin.X + w + 2*pad, Y: origin.Y},
		{X: origin.X + w + 2*pad, Y: origin.Y + h + 2*pad},
		{X: origin.X, Y: origin.Y + h + 2*pad},
	}
	dc.FillPolygon(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}, box)
	dc.StrokeLines(draw.LineStyle{Color: color.Black, Width: vg.Points(0.8)}, append(box, box[0]))
	dc.FillText(sty, vg.Point{X: origin.X + pad, Y: origin.Y + pad}, signature)
}
