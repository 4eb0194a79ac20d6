// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/wneessen/wxmaps/internal/product"
	"github.com/wneessen/wxmaps/internal/weather"
)

// bandGrid exposes a field as a plotter.GridXYZ whose values are snapped to the lower bound of
// their contour band, so the heat map paints filled contours.
type bandGrid struct {
	grid   weather.Grid
	field  weather.Field
	levels product.Levels
}

func (g bandGrid) Dims() (c, r int) {
	return len(g.grid.Lons), len(g.grid.Lats)
}

func (g bandGrid) Z(c, r int) float64 {
	v := g.field.At(r, c)
	i := g.levels.Quantize(v)
	if i < 0 {
		return v
	}
	return g.levels.Level(i)
}

func (g bandGrid) X(c int) float64 { return g.grid.Lons[c] }

func (g bandGrid) Y(r int) float64 { return g.grid.Lats[r] }

// scaleGrid is the one row grid drawn as the colour bar.
type scaleGrid struct {
	levels product.Levels
}

func (s scaleGrid) Dims() (c, r int) { return s.levels.Count(), 1 }

func (s scaleGrid) Z(c, _ int) float64 { return s.levels.Level(c) }

func (s scaleGrid) X(c int) float64 { return s.levels.Level(c) + s.levels.Step/2 }

func (s scaleGrid) Y(int) float64 { return 0 }
