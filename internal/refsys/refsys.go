// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package refsys resolves named reference systems into boundary layer visibility and line widths.
package refsys

import (
	"sort"
	"strings"
)

// Layer identifies a boundary overlay.
type Layer int

// Layers in draw order.
const (
	GACC Layer = iota
	PSA
	County
	State
	CWA
	FireWeatherZone
	PublicZone
	numLayers
)

// DefaultWidth is the line width of every layer unless a preset overrides it.
const DefaultWidth = 1.0

const (
	nationalWidth = 0.25
	nationalPSA   = 0.5
	detailWidth   = 0.25
)

// Custom is the preset that passes caller flags through.
const Custom = "Custom"

var layerNames = [numLayers]string{"gacc", "psa", "county", "state", "cwa", "fire_weather_zone", "public_zone"}

// Layers returns all layers in draw order.
func Layers() []Layer {
	out := make([]Layer, numLayers)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

func (l Layer) String() string {
	if l < 0 || l >= numLayers {
		return "unknown"
	}
	return layerNames[l]
}

// ParseLayer returns the layer with the given name as used in configuration files.
func ParseLayer(name string) (Layer, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// Flags holds the visibility of each layer.
type Flags [numLayers]bool

// With returns a copy of f with the given layers switched on.
func (f Flags) With(layers ...Layer) Flags {
	for _, l := range layers {
		f[l] = true
	}
	return f
}

// Boundaries is a resolved reference system.
type Boundaries struct {
	Flags Flags
	Width [numLayers]float64
}

// Visible reports whether layer l is drawn.
func (b Boundaries) Visible(l Layer) bool {
	return b.Flags[l]
}

// LineWidth returns the width of layer l.
func (b Boundaries) LineWidth(l Layer) float64 {
	return b.Width[l]
}

// Active returns the visible layers in draw order.
func (b Boundaries) Active() []Layer {
	var out []Layer
	for _, l := range Layers() {
		if b.Flags[l] {
			out = append(out, l)
		}
	}
	return out
}

type preset struct {
	layers []Layer
	// always overrides widths regardless of scope, national on national maps only.
	always   map[Layer]float64
	national map[Layer]float64
}

var presets = map[string]preset{
	"States Only": {layers: []Layer{State}},
	"States & Counties": {
		layers:   []Layer{State, County},
		national: map[Layer]float64{County: nationalWidth},
	},
	"GACC Only": {layers: []Layer{GACC}},
	"GACC & PSA": {
		layers:   []Layer{GACC, PSA},
		national: map[Layer]float64{PSA: nationalWidth},
	},
	"CWA Only": {layers: []Layer{CWA}},
	"NWS CWAs & NWS Public Zones": {
		layers:   []Layer{CWA, PublicZone},
		national: map[Layer]float64{PublicZone: nationalWidth},
	},
	"NWS CWAs & NWS Fire Weather Zones": {
		layers:   []Layer{CWA, FireWeatherZone},
		national: map[Layer]float64{FireWeatherZone: nationalWidth},
	},
	"NWS CWAs & Counties": {
		layers:   []Layer{CWA, County},
		national: map[Layer]float64{County: nationalWidth},
	},
	"GACC & PSA & NWS Fire Weather Zones": {
		layers:   []Layer{GACC, PSA, FireWeatherZone},
		always:   map[Layer]float64{FireWeatherZone: detailWidth},
		national: map[Layer]float64{PSA: nationalPSA},
	},
	"GACC & PSA & NWS Public Zones": {
		layers:   []Layer{GACC, PSA, PublicZone},
		always:   map[Layer]float64{PublicZone: detailWidth},
		national: map[Layer]float64{PSA: nationalPSA},
	},
	"GACC & PSA & NWS CWA": {
		layers:   []Layer{GACC, PSA, CWA},
		always:   map[Layer]float64{CWA: detailWidth},
		national: map[Layer]float64{PSA: nationalPSA},
	},
	"GACC & PSA & County": {
		layers:   []Layer{GACC, PSA, County},
		always:   map[Layer]float64{County: detailWidth},
		national: map[Layer]float64{PSA: nationalPSA},
	},
	"GACC & County": {
		layers: []Layer{GACC, County},
		always: map[Layer]float64{County: detailWidth},
	},
}

// Names returns the known preset names, Custom included, sorted.
func Names() []string {
	names := make([]string, 0, len(presets)+1)
	for name := range presets {
		names = append(names, name)
	}
	names = append(names, Custom)
	sort.Strings(names)
	return names
}

// Known reports whether name is a preset or Custom.
func Known(name string) bool {
	if name == Custom {
		return true
	}
	_, ok := presets[name]
	return ok
}

// Resolve returns the boundaries of the named preset. Unknown names yield no visible layer and
// Custom returns custom unchanged with default widths. national selects the thinner lines used
// on country-wide maps.
func Resolve(name string, national bool, custom Flags) Boundaries {
	b := Boundaries{}
	for i := range b.Width {
		b.Width[i] = DefaultWidth
	}
	if name == Custom {
		b.Flags = custom
		return b
	}
	p, ok := presets[name]
	if !ok {
		return b
	}
	b.Flags = b.Flags.With(p.layers...)
	for l, w := range p.always {
		b.Width[l] = w
	}
	if national {
		for l, w := range p.national {
			b.Width[l] = w
		}
	}
	return b
}

// Slug returns a file system friendly form of a preset name.
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case r == '&':
			if !dash && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString("AND")
			dash = false
		default:
			if !dash && sb.Len() > 0 {
				sb.WriteByte('_')
				dash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "_")
}
