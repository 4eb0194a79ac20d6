// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package region resolves a region selector into map bounds and a figure layout.
package region

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/vartype"
)

// Kind is the selection path of a Selector.
type Kind int

const (
	KindNone Kind = iota
	KindState
	KindGACC
	KindBounds
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindGACC:
		return "gacc"
	case KindBounds:
		return "bounds"
	default:
		return "none"
	}
}

var (
	ErrAmbiguousSelector = errors.New("exactly one of state, gacc or bounds must be given")
	ErrUnknownState      = errors.New("unknown state code")
	ErrUnknownGACC       = errors.New("unknown GACC code")
	ErrNoSelector        = errors.New("region selector is empty")
)

// Selector picks the map area. It holds exactly one of a state code, a GACC code or explicit
// bounds. The zero value selects nothing and fails to resolve.
type Selector struct {
	kind   Kind
	code   string
	bounds geo.Bounds
	label  string
}

// NewSelector returns a selector for whichever of state, gacc or bounds is set. Setting more than
// one, or none, is a configuration error. Codes are validated against the built-in tables.
func NewSelector(state, gacc string, bounds *geo.Bounds) (Selector, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	gacc = strings.ToUpper(strings.TrimSpace(gacc))

	set := 0
	for _, ok := range []bool{state != "", gacc != "", bounds != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return Selector{}, errs.Config("select region",
			fmt.Errorf("%w: state=%q gacc=%q bounds=%t", ErrAmbiguousSelector, state, gacc, bounds != nil))
	}

	switch {
	case state != "":
		if alias, ok := stateAliases[state]; ok {
			state = alias
		}
		if _, ok := states[state]; !ok {
			return Selector{}, errs.Config("select region", fmt.Errorf("%w: %s", ErrUnknownState, state))
		}
		return Selector{kind: KindState, code: state}, nil
	case gacc != "":
		if alias, ok := gaccAliases[gacc]; ok {
			gacc = alias
		}
		if _, ok := gaccs[gacc]; !ok {
			return Selector{}, errs.Config("select region", fmt.Errorf("%w: %s", ErrUnknownGACC, gacc))
		}
		return Selector{kind: KindGACC, code: gacc}, nil
	default:
		if err := bounds.Validate(); err != nil {
			return Selector{}, errs.Config("select region", err)
		}
		return Selector{kind: KindBounds, code: "CUSTOM", bounds: *bounds}, nil
	}
}

// State is a shortcut for NewSelector(code, "", nil).
func State(code string) (Selector, error) { return NewSelector(code, "", nil) }

// GACC is a shortcut for NewSelector("", code, nil).
func GACC(code string) (Selector, error) { return NewSelector("", code, nil) }

// Bounds is a shortcut for NewSelector("", "", &b).
func Bounds(b geo.Bounds) (Selector, error) { return NewSelector("", "", &b) }

// WithLabel returns a copy of s that is displayed and filed under label. It is meant for explicit
// bounds which have no name of their own.
func (s Selector) WithLabel(label string) Selector {
	s.label = strings.TrimSpace(label)
	return s
}

func (s Selector) Kind() Kind { return s.kind }

// Code returns the state or GACC code, or CUSTOM for explicit bounds.
func (s Selector) Code() string { return s.code }

// National reports whether the selector covers the whole country.
func (s Selector) National() bool {
	return s.kind == KindState && s.code == "US"
}

// Layout is the figure geometry and type sizes of one map. Sizes are in inches and points,
// positions are fractions of the figure.
type Layout struct {
	Width  float64
	Height float64
	DPI    float64

	SignatureX float64
	SignatureY float64

	TitleSize     float64
	SubtitleSize  float64
	SignatureSize float64
	SampleSize    float64
	ColorbarSize  float64
	TickSize      float64

	ColorbarShrink float64
	ColorbarPad    float64
	ColorbarAspect float64
}

// Validate checks that all sizes are positive and the fractions lie within the figure.
func (l Layout) Validate() error {
	positive := map[string]float64{
		"width": l.Width, "height": l.Height, "dpi": l.DPI,
		"title size": l.TitleSize, "subtitle size": l.SubtitleSize, "signature size": l.SignatureSize,
		"sample size": l.SampleSize, "colorbar size": l.ColorbarSize, "tick size": l.TickSize,
		"colorbar aspect": l.ColorbarAspect,
	}
	keys := make([]string, 0, len(positive))
	for k := range positive {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := positive[k]; !(v > 0) {
			return fmt.Errorf("layout %s must be positive, got %.2f", k, v)
		}
	}
	fractions := []struct {
		name string
		v    float64
	}{
		{"signature x", l.SignatureX}, {"signature y", l.SignatureY},
		{"colorbar pad", l.ColorbarPad},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("layout %s must be within [0, 1], got %.2f", f.name, f.v)
		}
	}
	if l.ColorbarShrink <= 0 || l.ColorbarShrink > 1 {
		return fmt.Errorf("layout colorbar shrink must be within (0, 1], got %.2f", l.ColorbarShrink)
	}
	return nil
}

// LayoutOverrides replace individual values of the computed layout.
type LayoutOverrides struct {
	Width          vartype.Float
	Height         vartype.Float
	DPI            vartype.Float
	SignatureX     vartype.Float
	SignatureY     vartype.Float
	TitleSize      vartype.Float
	SubtitleSize   vartype.Float
	SignatureSize  vartype.Float
	SampleSize     vartype.Float
	ColorbarSize   vartype.Float
	TickSize       vartype.Float
	ColorbarShrink vartype.Float
	ColorbarPad    vartype.Float
	ColorbarAspect vartype.Float
}

func (o LayoutOverrides) apply(l *Layout) {
	o.Width.Apply(&l.Width)
	o.Height.Apply(&l.Height)
	o.DPI.Apply(&l.DPI)
	o.SignatureX.Apply(&l.SignatureX)
	o.SignatureY.Apply(&l.SignatureY)
	o.TitleSize.Apply(&l.TitleSize)
	o.SubtitleSize.Apply(&l.SubtitleSize)
	o.SignatureSize.Apply(&l.SignatureSize)
	o.SampleSize.Apply(&l.SampleSize)
	o.ColorbarSize.Apply(&l.ColorbarSize)
	o.TickSize.Apply(&l.TickSize)
	o.ColorbarShrink.Apply(&l.ColorbarShrink)
	o.ColorbarPad.Apply(&l.ColorbarPad)
	o.ColorbarAspect.Apply(&l.ColorbarAspect)
}

// Profile is a resolved region.
type Profile struct {
	Selector Selector
	Name     string
	Bounds   geo.Bounds
	Layout   Layout
}

// National reports whether the profile covers the whole country.
func (p Profile) National() bool {
	return p.Selector.National()
}

// Key returns the directory name under which maps of this region are filed.
func (p Profile) Key() string {
	if p.Selector.kind == KindBounds && p.Selector.label != "" {
		return strings.ToUpper(strings.Join(strings.Fields(p.Selector.label), "_"))
	}
	return p.Selector.code
}

var titleCaser = cases.Title(language.English)

// Resolve returns the bounds and layout of the selected region with overrides applied.
func Resolve(sel Selector, overrides LayoutOverrides) (Profile, error) {
	var p Profile
	switch sel.kind {
	case KindState:
		a := states[sel.code]
		p = Profile{Selector: sel, Name: a.name, Bounds: a.bounds}
	case KindGACC:
		a := gaccs[sel.code]
		p = Profile{Selector: sel, Name: a.name, Bounds: a.bounds}
	case KindBounds:
		name := "Custom Region"
		if sel.label != "" {
			name = titleCaser.String(sel.label)
		}
		p = Profile{Selector: sel, Name: name, Bounds: sel.bounds}
	default:
		return Profile{}, errs.Config("resolve region", ErrNoSelector)
	}

	p.Layout = defaultLayout(p.Bounds, sel.National())
	overrides.apply(&p.Layout)
	if err := p.Layout.Validate(); err != nil {
		return Profile{}, errs.Config("resolve region "+sel.code, err)
	}
	return p, nil
}

// Layout constants for a 12 inch wide reference figure.
const (
	referenceWidth = 12.0
	headerInches   = 1.0
	footerInches   = 1.2
	minSide        = 5.0
	maxSide        = 16.0
)

// defaultLayout sizes the figure after the aspect ratio of the bounds and scales type with it.
func defaultLayout(b geo.Bounds, national bool) Layout {
	aspect := b.LonSpan() * math.Cos(b.Center().Lat*math.Pi/180) / b.LatSpan()
	mapW, mapH := referenceWidth, referenceWidth/aspect
	if aspect < 1 {
		mapH = referenceWidth * 0.85
		mapW = mapH * aspect
	}
	width := clamp(mapW, minSide, maxSide)
	height := clamp(mapH+headerInches+footerInches, minSide, maxSide)
	scale := width / referenceWidth

	l := Layout{
		Width:          round(width),
		Height:         round(height),
		DPI:            150,
		SignatureX:     0.01,
		SignatureY:     round(footerInches/height + 0.01),
		TitleSize:      math.Max(8, math.Round(12*scale)),
		SubtitleSize:   math.Max(7, math.Round(10*scale)),
		SignatureSize:  math.Max(6, math.Round(8*scale)),
		SampleSize:     math.Max(5, math.Round(8*scale)),
		ColorbarSize:   math.Max(6, math.Round(9*scale)),
		TickSize:       math.Max(6, math.Round(8*scale)),
		ColorbarShrink: 0.8,
		ColorbarPad:    0.02,
		ColorbarAspect: 30,
	}
	if national {
		l.SampleSize = 5
		l.ColorbarShrink = 0.9
		l.ColorbarAspect = 40
	}
	return l
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

// States returns the known state codes, sorted.
func States() []string {
	return keys(states)
}

// GACCs returns the known GACC codes, sorted.
func GACCs() []string {
	return keys(gaccs)
}

func keys(m map[string]area) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
