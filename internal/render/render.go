// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package render draws a map from a RenderingPlan and a FieldSet.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/plan"
	"github.com/wneessen/wxmaps/internal/product"
	"github.com/wneessen/wxmaps/internal/shapes"
	"github.com/wneessen/wxmaps/internal/weather"
)

// Space reserved above and below the map, in inches.
const (
	headerInches = 1.0
	footerInches = 1.2
)

var ErrNoFields = errors.New("field set is empty")

// Text holds the annotations of a map. Left is the product and region, Right the valid time.
type Text struct {
	LeftTitle     string
	LeftSubtitle  string
	RightTitle    string
	RightSubtitle string
	ColorbarLabel string
	Signature     string
}

// Options are the product specific inputs of Render.
type Options struct {
	Product product.Product
	Text    Text
	Wind    WindStyle
}

// Render draws the map in a fixed order: basemap, features, filled contours, boundaries, sample
// values or wind glyphs, colour bar, titles and signature. layers may be nil when no shapefile is
// needed.
func Render(p *plan.RenderingPlan, fs *weather.FieldSet, layers *shapes.Set, opts Options) (image.Image, error) {
	if p == nil {
		return nil, errs.Render("render", errors.New("rendering plan is nil"))
	}
	if fs == nil {
		return nil, errs.Render("render", ErrNoFields)
	}
	if err := fs.Validate(); err != nil {
		return nil, errs.Render("render", err)
	}
	if layers == nil {
		layers = &shapes.Set{}
	}
	for _, line := range p.Lines {
		if layers.Boundaries[line.Layer] == nil {
			return nil, errs.Render("render", fmt.Errorf("boundary layer %s was not loaded", line.Layer))
		}
	}

	levels := opts.Product.Levels(fs.ValidTime)
	if levels.Count() < 2 {
		return nil, errs.Render("render", fmt.Errorf("product %s has fewer than two levels", opts.Product.Name))
	}
	pal := withAlpha(opts.Product.Palette(levels), p.Alpha)

	mapPlot, err := mapLayers(p, fs, layers, opts, levels, pal)
	if err != nil {
		return nil, errs.Render("render", err)
	}

	layout := p.Layout
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(layout.Width)*vg.Inch, vg.Length(layout.Height)*vg.Inch),
		vgimg.UseDPI(int(layout.DPI)),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(canvas)

	mapArea := fitAspect(draw.Crop(dc, 0, 0, vg.Length(footerInches)*vg.Inch, -vg.Length(headerInches)*vg.Inch),
		aspectOf(p))
	mapPlot.Draw(mapArea)

	drawColorbar(dc, mapArea, p, levels, pal, opts.Text.ColorbarLabel)
	drawTitles(dc, mapArea, layout, opts.Text)
	drawSignature(dc, layout, opts.Text.Signature)

	return canvas.Image(), nil
}

// mapLayers assembles the map plot.
func mapLayers(p *plan.RenderingPlan, fs *weather.FieldSet, layers *shapes.Set, opts Options,
	levels product.Levels, pal palette.Palette,
) (*plot.Plot, error) {
	plt := plot.New()
	plt.HideAxes()
	plt.BackgroundColor = color.Transparent

	features := p.Features
	if features.Ocean {
		plt.Add(background{color: features.OceanColor})
	}
	if land := layers.Features[shapes.Land]; features.Land && land != nil {
		plt.Add(polygons{layer: land, color: features.LandColor})
	}

	heat := plotter.NewHeatMap(bandGrid{grid: fs.Grid, field: fs.Primary, levels: levels}, pal)
	heat.Min = levels.Min
	heat.Max = levels.Level(levels.Count() - 1)
	plt.Add(heat)

	if lakes := layers.Features[shapes.Lakes]; features.Lakes && lakes != nil {
		plt.Add(polygons{layer: lakes, color: features.WaterColor})
	}
	if rivers := layers.Features[shapes.Rivers]; features.Rivers && rivers != nil {
		plt.Add(outlines{layer: rivers, style: draw.LineStyle{Color: features.WaterColor, Width: vg.Points(0.4)}})
	}
	if coast := layers.Features[shapes.Coastline]; features.Coastline && coast != nil {
		plt.Add(outlines{layer: coast, style: draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)}})
	}
	for _, line := range p.Lines {
		plt.Add(outlines{layer: layers.Boundaries[line.Layer], style: lineStyle(line)})
	}

	step := p.SampleStep(fs.Grid.Spacing())
	switch {
	case opts.Product.Vectors:
		u, okU := fs.Extra[weather.ExtraWindU]
		v, okV := fs.Extra[weather.ExtraWindV]
		if !okU || !okV {
			return nil, errors.New("wind product without wind components")
		}
		glyphs, err := newWindGlyphs(fs.Grid, u, v)
		if err != nil {
			return nil, err
		}
		glyphs.step, glyphs.style = step, opts.Wind
		glyphs.color, glyphs.scale = p.Samples.Color, p.Samples.FontSize/8
		plt.Add(glyphs)
	case p.Samples.Show:
		points := samplePoints(fs.Grid, fs.Primary, step, sampleFormat(fs))
		if len(points.XYs) == 0 {
			break
		}
		if p.Samples.Box {
			plt.Add(boxedLabels{points: points, style: labelStyle(p.Samples.FontSize, p.Samples.Color)})
			break
		}
		labels, err := newSampleLabels(points, p.Samples.FontSize, p.Samples.Color)
		if err != nil {
			return nil, fmt.Errorf("sample labels: %w", err)
		}
		plt.Add(labels)
	}

	plt.X.Min, plt.X.Max = p.Bounds.West, p.Bounds.East
	plt.Y.Min, plt.Y.Max = p.Bounds.South, p.Bounds.North
	plt.X.Padding, plt.Y.Padding = 0, 0
	return plt, nil
}

func sampleFormat(fs *weather.FieldSet) string {
	if fs.IsDelta() {
		return "%+.0f"
	}
	return "%.0f"
}

// aspectOf returns the width to height ratio of the map in an equirectangular projection scaled at
// the central latitude.
func aspectOf(p *plan.RenderingPlan) float64 {
	b := p.Bounds
	return b.LonSpan() * math.Cos(b.Center().Lat*math.Pi/180) / b.LatSpan()
}

// fitAspect shrinks c to the largest centred area with the given aspect ratio.
func fitAspect(c draw.Canvas, aspect float64) draw.Canvas {
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	if w <= 0 || h <= 0 || !(aspect > 0) {
		return c
	}
	if float64(w/h) > aspect {
		nw := vg.Length(float64(h) * aspect)
		dx := (w - nw) / 2
		return draw.Crop(c, dx, -dx, 0, 0)
	}
	nh := vg.Length(float64(w) / aspect)
	dy := (h - nh) / 2
	return draw.Crop(c, 0, 0, dy, -dy)
}

func withAlpha(p palette.Palette, alpha float64) palette.Palette {
	if alpha >= 1 {
		return p
	}
	src := p.Colors()
	out := make(colors, len(src))
	for i, c := range src {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		n.A = uint8(math.Round(float64(n.A) * alpha))
		out[i] = n
	}
	return out
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

func plotFont(size float64, bold bool) font.Font {
	f := plot.DefaultFont
	f.Size = vg.Points(size)
	if bold {
		f.Weight = xfont.WeightBold
	}
	return f
}

func textStyle(size float64, bold bool, x text.XAlignment, y text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    plotFont(size, bold),
		XAlign:  x,
		YAlign:  y,
		Handler: plot.DefaultTextHandler,
	}
}
