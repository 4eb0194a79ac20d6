// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package plan

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/refsys"
	"github.com/wneessen/wxmaps/internal/region"
	"github.com/wneessen/wxmaps/internal/vartype"
)

func mustSelector(t *testing.T, state, gacc string, bounds *geo.Bounds) region.Selector {
	t.Helper()
	sel, err := region.NewSelector(state, gacc, bounds)
	if err != nil {
		t.Fatalf("failed to create selector: %s", err)
	}
	return sel
}

func lineFor(p *RenderingPlan, layer refsys.Layer) (Line, bool) {
	for _, l := range p.Lines {
		if l.Layer == layer {
			return l, true
		}
	}
	return Line{}, false
}

func TestNew(t *testing.T) {
	t.Run("national states and counties use thin county lines", func(t *testing.T) {
		p, err := New(Options{
			Region:          mustSelector(t, "us", "", nil),
			ReferenceSystem: "States & Counties",
		})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		county, ok := lineFor(p, refsys.County)
		if !ok {
			t.Fatal("expected county line to be drawn")
		}
		if county.Width != 0.25 {
			t.Errorf("expected county width 0.25, got %.2f", county.Width)
		}
		state, _ := lineFor(p, refsys.State)
		if state.Width != 1 {
			t.Errorf("expected state width 1, got %.2f", state.Width)
		}
		if !p.National() {
			t.Error("expected plan to be national")
		}
	})
	t.Run("regional states and counties use default widths", func(t *testing.T) {
		p, err := New(Options{
			Region:          mustSelector(t, "CO", "", nil),
			ReferenceSystem: "States & Counties",
		})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		county, _ := lineFor(p, refsys.County)
		if county.Width != 1 {
			t.Errorf("expected county width 1, got %.2f", county.Width)
		}
	})
	t.Run("lines follow draw order", func(t *testing.T) {
		p, err := New(Options{
			Region:          mustSelector(t, "", "GBCC", nil),
			ReferenceSystem: "GACC & PSA & County",
		})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		var got []refsys.Layer
		for _, l := range p.Lines {
			got = append(got, l.Layer)
		}
		want := []refsys.Layer{refsys.GACC, refsys.PSA, refsys.County}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("draw order mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("layer overrides", func(t *testing.T) {
		p, err := New(Options{
			Region:          mustSelector(t, "CO", "", nil),
			ReferenceSystem: "States Only",
			Boundaries: BoundaryStyle{Layers: map[refsys.Layer]LayerStyle{
				refsys.State: {Width: vartype.Of(2.5), Color: vartype.Of("#ff0000"), Dash: vartype.Of(DashDashed)},
				refsys.CWA:   {Show: vartype.Of(true)},
			}},
		})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		state, _ := lineFor(p, refsys.State)
		if state.Width != 2.5 || state.Dash != DashDashed {
			t.Errorf("state overrides not applied: %+v", state)
		}
		if diff := cmp.Diff(color.Color(color.NRGBA{R: 255, A: 255}), state.Color); diff != "" {
			t.Errorf("state colour mismatch (-want +got):\n%s", diff)
		}
		if _, ok := lineFor(p, refsys.CWA); !ok {
			t.Error("expected CWA to be forced on")
		}
	})
	t.Run("explicit bounds drive the plan", func(t *testing.T) {
		b := geo.Bounds{West: -106, East: -104, South: 39, North: 40.5}
		p, err := New(Options{Region: mustSelector(t, "", "", &b)})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		if p.Bounds != b {
			t.Errorf("expected bounds %s, got %s", b, p.Bounds)
		}
		if len(p.Lines) != 0 {
			t.Errorf("expected no lines without a reference system, got %d", len(p.Lines))
		}
		if p.Samples.Stride != 10 {
			t.Errorf("expected stride 10, got %d", p.Samples.Stride)
		}
	})
	t.Run("unknown reference system draws no lines", func(t *testing.T) {
		p, err := New(Options{Region: mustSelector(t, "CO", "", nil), ReferenceSystem: "Everything"})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		if len(p.Lines) != 0 {
			t.Errorf("expected no lines for an unknown reference system, got %d", len(p.Lines))
		}
	})
	t.Run("sample overrides", func(t *testing.T) {
		p, err := New(Options{
			Region:      mustSelector(t, "CO", "", nil),
			ShowSamples: true,
			Samples:     SamplePointStyle{Stride: vartype.Of(7), Box: vartype.Of(true)},
		})
		if err != nil {
			t.Fatalf("failed to build plan: %s", err)
		}
		if !p.Samples.Show || p.Samples.Stride != 7 || !p.Samples.Box {
			t.Errorf("sample overrides not applied: %+v", p.Samples)
		}
	})
	t.Run("invalid options are configuration errors", func(t *testing.T) {
		sel := mustSelector(t, "CO", "", nil)
		tests := []struct {
			name string
			opts Options
		}{
			{"zero selector", Options{}},
			{"negative width", Options{Region: sel, ReferenceSystem: "States Only", Boundaries: BoundaryStyle{
				Layers: map[refsys.Layer]LayerStyle{refsys.State: {Width: vartype.Of(-1.0)}},
			}}},
			{"bad dash", Options{Region: sel, ReferenceSystem: "States Only", Boundaries: BoundaryStyle{
				Layers: map[refsys.Layer]LayerStyle{refsys.State: {Dash: vartype.Of("wavy")}},
			}}},
			{"bad colour", Options{Region: sel, Boundaries: BoundaryStyle{OceanColor: vartype.Of("#zzz")}}},
			{"zero stride", Options{Region: sel, Samples: SamplePointStyle{Stride: vartype.Of(0)}}},
			{"alpha out of range", Options{Region: sel, Alpha: vartype.Of(1.5)}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := New(tt.opts)
				if !errors.Is(err, errs.ErrConfiguration) {
					t.Fatalf("expected configuration error, got %v", err)
				}
			})
		}
	})
}

func TestDecimation(t *testing.T) {
	tests := []struct {
		name   string
		bounds geo.Bounds
		want   int
	}{
		{"small box", geo.Bounds{West: -106, East: -104, South: 39, North: 41}, 10},
		{"state", geo.Bounds{West: -109.1, East: -102, South: 37, North: 41}, 20},
		{"gacc", geo.Bounds{West: -120.5, East: -109, South: 35, North: 46}, 40},
		{"multi state", geo.Bounds{West: -120, East: -80, South: 30, North: 50}, 80},
		{"national", geo.Bounds{West: -126, East: -66, South: 24, North: 50.5}, 160},
		{"hemisphere", geo.Bounds{West: -170, East: -10, South: 0, North: 70}, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decimation(tt.bounds); got != tt.want {
				t.Errorf("expected stride %d, got %d (extent %.2f)", tt.want, got, tt.bounds.Extent())
			}
		})
	}
}

func TestRenderingPlan_SampleStep(t *testing.T) {
	p := &RenderingPlan{Samples: Samples{Stride: 20}}
	if got := p.SampleStep(NativeSpacing); got != 20 {
		t.Errorf("expected 20 at native spacing, got %d", got)
	}
	if got := p.SampleStep(NativeSpacing * 4); got != 5 {
		t.Errorf("expected 5 at quarter resolution, got %d", got)
	}
	if got := p.SampleStep(1); got != 1 {
		t.Errorf("expected step to be at least 1, got %d", got)
	}
	if got := p.SampleStep(0); got != 20 {
		t.Errorf("expected stride for unknown spacing, got %d", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"black", color.RGBA{A: 255}, false},
		{" Red ", color.RGBA{R: 255, A: 255}, false},
		{"#0f0", color.NRGBA{G: 255, A: 255}, false},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, false},
		{"#33669980", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}, false},
		{"", nil, true},
		{"notacolour", nil, true},
		{"#12345", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to parse colour: %s", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("colour mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
