// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package product

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSeasonOf(t *testing.T) {
	want := map[time.Month]Season{
		time.January: Cold, time.February: Cold, time.March: Shoulder, time.April: Shoulder,
		time.May: Warm, time.June: Warm, time.July: Warm, time.August: Warm, time.September: Warm,
		time.October: Shoulder, time.November: Shoulder, time.December: Cold,
	}
	for month, season := range want {
		t.Run(month.String(), func(t *testing.T) {
			got := SeasonOf(time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC))
			if got != season {
				t.Errorf("expected %s, got %s", season, got)
			}
		})
	}
	t.Run("uses the UTC month", func(t *testing.T) {
		denver := time.FixedZone("MDT", -6*3600)
		local := time.Date(2025, 4, 30, 20, 0, 0, 0, denver)
		if got := SeasonOf(local); got != Warm {
			t.Errorf("expected warm for 1 May UTC, got %s", got)
		}
	})
}

func TestLevels(t *testing.T) {
	l := Levels{Min: 0, Max: 10, Step: 2, TickStep: 4}
	if diff := cmp.Diff([]float64{0, 2, 4, 6, 8, 10}, l.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 4, 8}, l.Ticks(false)); diff != "" {
		t.Errorf("regional ticks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 8}, l.Ticks(true)); diff != "" {
		t.Errorf("national ticks mismatch (-want +got):\n%s", diff)
	}
	tests := []struct {
		v    float64
		want int
	}{
		{-5, 0}, {0, 0}, {1.9, 0}, {2, 1}, {9.99, 4}, {10, 5}, {50, 5}, {math.NaN(), -1},
	}
	for _, tt := range tests {
		if got := l.Quantize(tt.v); got != tt.want {
			t.Errorf("Quantize(%v): expected %d, got %d", tt.v, tt.want, got)
		}
	}
	if got := (Levels{Min: 1, Max: 0, Step: 1}).Count(); got != 0 {
		t.Errorf("expected empty range, got %d levels", got)
	}
}

func TestSeasonalLevels(t *testing.T) {
	tests := []struct {
		product  string
		month    time.Month
		min, max float64
	}{
		{NameTemperature, time.July, 30, 120},
		{NameTemperature, time.April, 0, 100},
		{NameTemperature, time.January, -30, 80},
		{NameDewPoint, time.August, 20, 80},
		{NameDewPoint, time.October, 0, 70},
		{NameDewPoint, time.December, -20, 60},
		{NameRelativeHumidity, time.July, 0, 100},
		{NameWindSpeed, time.January, 0, 60},
		{NameTemperature24h, time.July, -30, 30},
		{NameRelativeHumidity24h, time.July, -60, 60},
		{NameCloudCover24h, time.July, -100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.product+"/"+tt.month.String(), func(t *testing.T) {
			p, err := Lookup(tt.product)
			if err != nil {
				t.Fatalf("failed to look up product: %s", err)
			}
			l := p.Levels(time.Date(2025, tt.month, 10, 0, 0, 0, 0, time.UTC))
			if l.Min != tt.min || l.Max != tt.max {
				t.Errorf("expected %.0f..%.0f, got %.0f..%.0f", tt.min, tt.max, l.Min, l.Max)
			}
		})
	}
}

func TestCatalogue(t *testing.T) {
	names := Names()
	if len(names) != 12 {
		t.Fatalf("expected 12 products, got %d", len(names))
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := Lookup(name)
			if err != nil {
				t.Fatalf("failed to look up product: %s", err)
			}
			if p.Name != name {
				t.Errorf("expected name %s, got %s", name, p.Name)
			}
			if p.Delta != strings.HasSuffix(name, "_24h") {
				t.Errorf("delta flag does not match name")
			}
			if len(p.Variables) == 0 {
				t.Error("expected product to request variables")
			}
			l := p.Levels(time.Now())
			if l.Count() < 2 {
				t.Errorf("expected at least two levels, got %d", l.Count())
			}
			if got := len(p.Palette(l).Colors()); got != l.Count() {
				t.Errorf("expected %d colours, got %d", l.Count(), got)
			}
		})
	}
	if _, err := Lookup("precipitation"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestColorMap_Palette(t *testing.T) {
	t.Run("ramp end points are kept", func(t *testing.T) {
		got := MapHumidity.Palette(11).Colors()
		if diff := cmp.Diff(color.Color(ramps[MapHumidity][0]), got[0]); diff != "" {
			t.Errorf("first colour mismatch (-want +got):\n%s", diff)
		}
		last := ramps[MapHumidity][len(ramps[MapHumidity])-1]
		if diff := cmp.Diff(color.Color(last), got[10]); diff != "" {
			t.Errorf("last colour mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("reversed diverging map", func(t *testing.T) {
		fwd := MapDiverging.Palette(5).Colors()
		rev := MapDrying.Palette(5).Colors()
		r1, g1, b1, _ := fwd[0].RGBA()
		r2, g2, b2, _ := rev[4].RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 {
			t.Errorf("expected reversed palette to mirror the forward one")
		}
	})
	t.Run("single colour", func(t *testing.T) {
		if got := len(MapCloud.Palette(0).Colors()); got != 1 {
			t.Errorf("expected one colour, got %d", got)
		}
	})
}
