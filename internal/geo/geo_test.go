// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"errors"
	"math"
	"testing"
)

func TestCoordinate_DistanceTo(t *testing.T) {
	t.Run("one degree of latitude is roughly 111km", func(t *testing.T) {
		a := Coordinate{Lat: 40, Lon: -105}
		b := Coordinate{Lat: 41, Lon: -105}
		got := a.DistanceTo(b)
		if math.Abs(got-111195) > 100 {
			t.Errorf("expected about 111195m, got %.0f", got)
		}
	})
	t.Run("distance to self is zero", func(t *testing.T) {
		a := Coordinate{Lat: 40, Lon: -105}
		if a.DistanceTo(a) != 0 {
			t.Error("expected zero distance")
		}
	})
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"valid colorado box", Bounds{West: -109.1, East: -102, South: 36.9, North: 41.1}, false},
		{"west greater than east", Bounds{West: -100, East: -110, South: 30, North: 40}, true},
		{"south greater than north", Bounds{West: -110, East: -100, South: 45, North: 40}, true},
		{"out of range latitude", Bounds{West: -110, East: -100, South: 30, North: 95}, true},
		{"empty box", Bounds{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bounds.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("expected ErrInvalidBounds, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected no error, got %s", err)
			}
		})
	}
}

func TestBounds_Extent(t *testing.T) {
	t.Run("equatorial box uses the raw spans", func(t *testing.T) {
		b := Bounds{West: -10, East: 10, South: -5, North: 5}
		if got := b.Extent(); math.Abs(got-20) > 1e-9 {
			t.Errorf("expected extent 20, got %f", got)
		}
	})
	t.Run("longitude span shrinks with latitude", func(t *testing.T) {
		b := Bounds{West: -10, East: 10, South: 59, North: 61}
		want := 20 * math.Cos(60*math.Pi/180)
		if got := b.Extent(); math.Abs(got-want) > 1e-9 {
			t.Errorf("expected extent %f, got %f", want, got)
		}
	})
}

func TestBounds_Helpers(t *testing.T) {
	b := Bounds{West: -110, East: -100, South: 30, North: 40}
	if !b.Contains(Coordinate{Lat: 35, Lon: -105}) {
		t.Error("expected center to be contained")
	}
	if b.Contains(Coordinate{Lat: 45, Lon: -105}) {
		t.Error("did not expect point north of the box to be contained")
	}
	if !b.Intersects(Bounds{West: -101, East: -90, South: 39, North: 50}) {
		t.Error("expected overlapping boxes to intersect")
	}
	if b.Intersects(Bounds{West: -90, East: -80, South: 30, North: 40}) {
		t.Error("did not expect disjoint boxes to intersect")
	}
	p := Bounds{West: -179.5, East: 179.5, South: -89.5, North: 89.5}.Pad(1)
	if p.West != -180 || p.East != 180 || p.South != -90 || p.North != 90 {
		t.Errorf("expected padding to clamp, got %s", p)
	}
	if NormalizeLon(250) != -110 || NormalizeLon(-110) != -110 {
		t.Error("unexpected longitude normalization")
	}
}
