// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package region

import (
	"errors"
	"testing"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/vartype"
)

func TestNewSelector(t *testing.T) {
	custom := &geo.Bounds{West: -110, East: -100, South: 35, North: 42}
	tests := []struct {
		name    string
		state   string
		gacc    string
		bounds  *geo.Bounds
		kind    Kind
		code    string
		wantErr error
	}{
		{"state only", "co", "", nil, KindState, "CO", nil},
		{"national alias", "usa", "", nil, KindState, "US", nil},
		{"gacc only", "", "GBCC", nil, KindGACC, "GBCC", nil},
		{"gacc alias", "", "sw", nil, KindGACC, "SWCC", nil},
		{"bounds only", "", "", custom, KindBounds, "CUSTOM", nil},
		{"state and gacc", "CO", "RMCC", nil, KindNone, "", ErrAmbiguousSelector},
		{"state and bounds", "CO", "", custom, KindNone, "", ErrAmbiguousSelector},
		{"nothing at all", "", "", nil, KindNone, "", ErrAmbiguousSelector},
		{"whitespace only", "  ", "", nil, KindNone, "", ErrAmbiguousSelector},
		{"unknown state", "XX", "", nil, KindNone, "", ErrUnknownState},
		{"unknown gacc", "", "ABCD", nil, KindNone, "", ErrUnknownGACC},
		{"incomplete bounds", "", "", &geo.Bounds{West: -110}, KindNone, "", geo.ErrInvalidBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelector(tt.state, tt.gacc, tt.bounds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %s, got %v", tt.wantErr, err)
				}
				if !errors.Is(err, errs.ErrConfiguration) {
					t.Errorf("expected a configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to create selector: %s", err)
			}
			if sel.Kind() != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, sel.Kind())
			}
			if sel.Code() != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, sel.Code())
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("state bounds and name", func(t *testing.T) {
		sel, err := State("CA")
		if err != nil {
			t.Fatalf("failed to create selector: %s", err)
		}
		p, err := Resolve(sel, LayoutOverrides{})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if p.Name != "California" {
			t.Errorf("expected California, got %s", p.Name)
		}
		if p.Bounds.West != -124.5 || p.Bounds.North != 42.1 {
			t.Errorf("unexpected bounds: %s", p.Bounds)
		}
		if p.National() {
			t.Error("expected California not to be national")
		}
		if p.Key() != "CA" {
			t.Errorf("expected key CA, got %s", p.Key())
		}
	})
	t.Run("national scope", func(t *testing.T) {
		sel, err := State("us")
		if err != nil {
			t.Fatalf("failed to create selector: %s", err)
		}
		p, err := Resolve(sel, LayoutOverrides{})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if !p.National() {
			t.Error("expected US to be national")
		}
		if p.Layout.SampleSize != 5 {
			t.Errorf("expected national sample size 5, got %.1f", p.Layout.SampleSize)
		}
	})
	t.Run("gacc name", func(t *testing.T) {
		sel, err := GACC("NRCC")
		if err != nil {
			t.Fatalf("failed to create selector: %s", err)
		}
		p, err := Resolve(sel, LayoutOverrides{})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if p.Name != "Northern Rockies" {
			t.Errorf("expected Northern Rockies, got %s", p.Name)
		}
	})
	t.Run("explicit bounds with label", func(t *testing.T) {
		b := geo.Bounds{West: -106, East: -104, South: 39, North: 40.5}
		sel, err := Bounds(b)
		if err != nil {
			t.Fatalf("failed to create selector: %s", err)
		}
		p, err := Resolve(sel.WithLabel("front range"), LayoutOverrides{})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if p.Bounds != b {
			t.Errorf("expected bounds %s, got %s", b, p.Bounds)
		}
		if p.Name != "Front Range" {
			t.Errorf("expected title cased label, got %s", p.Name)
		}
		if p.Key() != "FRONT_RANGE" {
			t.Errorf("expected key FRONT_RANGE, got %s", p.Key())
		}
	})
	t.Run("explicit bounds without label", func(t *testing.T) {
		sel, err := Bounds(geo.Bounds{West: -106, East: -104, South: 39, North: 40.5})
		if err != nil {
			t.Fatalf("failed to create selector: %s", err)
		}
		p, err := Resolve(sel, LayoutOverrides{})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if p.Name != "Custom Region" || p.Key() != "CUSTOM" {
			t.Errorf("unexpected name/key: %s/%s", p.Name, p.Key())
		}
	})
	t.Run("zero selector fails", func(t *testing.T) {
		_, err := Resolve(Selector{}, LayoutOverrides{})
		if !errors.Is(err, ErrNoSelector) || !errors.Is(err, errs.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
	t.Run("overrides replace computed values", func(t *testing.T) {
		sel, _ := State("CO")
		p, err := Resolve(sel, LayoutOverrides{
			Width:      vartype.Of(9.5),
			TitleSize:  vartype.Of(14.0),
			SignatureX: vartype.Of(0.7),
		})
		if err != nil {
			t.Fatalf("failed to resolve region: %s", err)
		}
		if p.Layout.Width != 9.5 || p.Layout.TitleSize != 14 || p.Layout.SignatureX != 0.7 {
			t.Errorf("overrides not applied: %+v", p.Layout)
		}
	})
	t.Run("invalid override fails", func(t *testing.T) {
		sel, _ := State("CO")
		_, err := Resolve(sel, LayoutOverrides{ColorbarShrink: vartype.Of(1.5)})
		if !errors.Is(err, errs.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
}

func TestDefaultLayout(t *testing.T) {
	for _, code := range States() {
		t.Run(code, func(t *testing.T) {
			sel, err := State(code)
			if err != nil {
				t.Fatalf("failed to create selector: %s", err)
			}
			p, err := Resolve(sel, LayoutOverrides{})
			if err != nil {
				t.Fatalf("failed to resolve %s: %s", code, err)
			}
			if p.Layout.Width < minSide || p.Layout.Width > maxSide {
				t.Errorf("width out of range: %.2f", p.Layout.Width)
			}
			if p.Layout.Height < minSide || p.Layout.Height > maxSide {
				t.Errorf("height out of range: %.2f", p.Layout.Height)
			}
		})
	}
	tall, _ := Resolve(mustState(t, "ID"), LayoutOverrides{})
	wide, _ := Resolve(mustState(t, "TN"), LayoutOverrides{})
	if tall.Layout.Width >= wide.Layout.Width {
		t.Errorf("expected tall states to get narrower figures: ID %.2f, TN %.2f", tall.Layout.Width,
			wide.Layout.Width)
	}
}

func TestTables(t *testing.T) {
	if got := len(States()); got != 51 {
		t.Errorf("expected 50 states plus US, got %d", got)
	}
	if got := len(GACCs()); got != 10 {
		t.Errorf("expected 10 GACCs, got %d", got)
	}
	for code, a := range states {
		if err := a.bounds.Validate(); err != nil {
			t.Errorf("state %s has invalid bounds: %s", code, err)
		}
	}
	for code, a := range gaccs {
		if err := a.bounds.Validate(); err != nil {
			t.Errorf("gacc %s has invalid bounds: %s", code, err)
		}
	}
}

func mustState(t *testing.T, code string) Selector {
	t.Helper()
	sel, err := State(code)
	if err != nil {
		t.Fatalf("failed to create selector: %s", err)
	}
	return sel
}
