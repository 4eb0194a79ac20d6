// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wneessen/wxmaps/internal/weather"
)

// samplePoints returns the value annotations at every step-th grid point. Missing values are
// skipped.
func samplePoints(grid weather.Grid, f weather.Field, step int, format string) plotter.XYLabels {
	var out plotter.XYLabels
	rows, cols := grid.Dims()
	for r := step / 2; r < rows; r += step {
		for c := step / 2; c < cols; c += step {
			v := f.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			out.XYs = append(out.XYs, plotter.XY{X: grid.Lons[c], Y: grid.Lats[r]})
			out.Labels = append(out.Labels, fmt.Sprintf(format, v))
		}
	}
	return out
}

func labelStyle(size float64, clr color.Color) text.Style {
	return text.Style{
		Color:   clr,
		Font:    plotFont(size, false),
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

// newSampleLabels wraps plotter.Labels with the sample style.
func newSampleLabels(points plotter.XYLabels, size float64, clr color.Color) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(points)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i] = labelStyle(size, clr)
	}
	return labels, nil
}

// boxedLabels draws each label on a white box.
type boxedLabels struct {
	points plotter.XYLabels
	style  text.Style
}

func (b boxedLabels) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	border := draw.LineStyle{Color: b.style.Color, Width: vg.Points(0.3)}
	pad := vg.Points(1)
	for i, xy := range b.points.XYs {
		pt := vg.Point{X: trX(xy.X), Y: trY(xy.Y)}
		if !c.Contains(pt) {
			continue
		}
		txt := b.points.Labels[i]
		w := b.style.Width(txt)/2 + pad
		h := b.style.Height(txt)/2 + pad
		box := []vg.Point{
			{X: pt.X - w, Y: pt.Y - h}, {X: pt.X + w, Y: pt.Y - h},
			{X: pt.X + w, Y: pt.Y + h}, {X: pt.X - w, Y: pt.Y + h},
		}
		c.FillPolygon(color.White, box)
		c.StrokeLines(border, append(box, box[0]))
		c.FillText(b.style, pt, txt)
	}
}
