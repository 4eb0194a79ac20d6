// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package plan

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/wneessen/wxmaps/internal/refsys"
	"github.com/wneessen/wxmaps/internal/vartype"
)

// Dash patterns understood by LayerStyle.
const (
	DashSolid  = "solid"
	DashDashed = "dashed"
	DashDotted = "dotted"
)

var ErrInvalidColor = errors.New("invalid colour")

// LayerStyle overrides the look of one boundary layer. Show forces the layer on or off regardless
// of the reference system.
type LayerStyle struct {
	Show  vartype.Bool
	Width vartype.Float
	Dash  vartype.String
	Color vartype.String
}

// BoundaryStyle groups the boundary and basemap feature options of a map.
type BoundaryStyle struct {
	Layers map[refsys.Layer]LayerStyle

	Ocean     vartype.Bool
	Land      vartype.Bool
	Coastline vartype.Bool
	Lakes     vartype.Bool
	Rivers    vartype.Bool

	OceanColor vartype.String
	LandColor  vartype.String
	WaterColor vartype.String
}

// SamplePointStyle controls the value annotations drawn at decimated grid points.
type SamplePointStyle struct {
	Show     vartype.Bool
	Stride   vartype.Int
	FontSize vartype.Float
	Color    vartype.String
	Box      vartype.Bool
}

// Line is a resolved boundary overlay.
type Line struct {
	Layer refsys.Layer
	Width float64
	Dash  string
	Color color.Color
}

// Features are the resolved basemap features.
type Features struct {
	Ocean      bool
	Land       bool
	Coastline  bool
	Lakes      bool
	Rivers     bool
	OceanColor color.Color
	LandColor  color.Color
	WaterColor color.Color
}

// Samples are the resolved sample point settings.
type Samples struct {
	Show     bool
	Stride   int
	FontSize float64
	Color    color.Color
	Box      bool
}

var defaultLayerColors = map[refsys.Layer]string{
	refsys.GACC:            "black",
	refsys.PSA:             "black",
	refsys.County:          "black",
	refsys.State:           "black",
	refsys.CWA:             "black",
	refsys.FireWeatherZone: "black",
	refsys.PublicZone:      "black",
}

// ParseColor accepts SVG colour names and #rgb, #rrggbb or #rrggbbaa hex notation.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func validDash(d string) bool {
	switch d {
	case DashSolid, DashDashed, DashDotted:
		return true
	}
	return false
}

// lines merges the reference system with the per-layer overrides, in draw order.
func (s BoundaryStyle) lines(b refsys.Boundaries) ([]Line, error) {
	var out []Line
	for _, layer := range refsys.Layers() {
		st := s.Layers[layer]
		if !st.Show.Or(b.Visible(layer)) {
			continue
		}
		line := Line{Layer: layer, Width: st.Width.Or(b.LineWidth(layer)), Dash: st.Dash.Or(DashSolid)}
		if !(line.Width > 0) {
			return nil, fmt.Errorf("%s line width must be positive, got %.2f", layer, line.Width)
		}
		if !validDash(line.Dash) {
			return nil, fmt.Errorf("%s line dash %q is not one of solid, dashed, dotted", layer, line.Dash)
		}
		c, err := ParseColor(st.Color.Or(defaultLayerColors[layer]))
		if err != nil {
			return nil, fmt.Errorf("%s line colour: %w", layer, err)
		}
		line.Color = c
		out = append(out, line)
	}
	return out, nil
}

func (s BoundaryStyle) features() (Features, error) {
	f := Features{
		Ocean:     s.Ocean.Or(true),
		Land:      s.Land.Or(true),
		Coastline: s.Coastline.Or(true),
		Lakes:     s.Lakes.Or(true),
		Rivers:    s.Rivers.Or(false),
	}
	var err error
	if f.OceanColor, err = ParseColor(s.OceanColor.Or("lightcyan")); err != nil {
		return f, fmt.Errorf("ocean colour: %w", err)
	}
	if f.LandColor, err = ParseColor(s.LandColor.Or("beige")); err != nil {
		return f, fmt.Errorf("land colour: %w", err)
	}
	if f.WaterColor, err = ParseColor(s.WaterColor.Or("lightblue")); err != nil {
		return f, fmt.Errorf("water colour: %w", err)
	}
	return f, nil
}

func (s SamplePointStyle) resolve(stride int, fontSize float64, show bool) (Samples, error) {
	out := Samples{
		Show:     s.Show.Or(show),
		Stride:   s.Stride.Or(stride),
		FontSize: s.FontSize.Or(fontSize),
		Box:      s.Box.Or(false),
	}
	if out.Stride < 1 {
		return out, fmt.Errorf("sample stride must be at least 1, got %d", out.Stride)
	}
	if !(out.FontSize > 0) {
		return out, fmt.Errorf("sample font size must be positive, got %.2f", out.FontSize)
	}
	c, err := ParseColor(s.Color.Or("black"))
	if err != nil {
		return out, fmt.Errorf("sample colour: %w", err)
	}
	out.Color = c
	return out, nil
}
