// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package units

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestTemperatureConversions(t *testing.T) {
	t.Run("known reference points", func(t *testing.T) {
		tests := []struct {
			name string
			got  float64
			want float64
		}{
			{"freezing in fahrenheit", CelsiusToFahrenheit(0), 32},
			{"boiling in fahrenheit", CelsiusToFahrenheit(100), 212},
			{"-40 is the same in both scales", CelsiusToFahrenheit(-40), -40},
			{"kelvin freezing to celsius", KelvinToCelsius(273.15), 0},
			{"kelvin freezing to fahrenheit", KelvinToFahrenheit(273.15), 32},
			{"fahrenheit to celsius", FahrenheitToCelsius(212), 100},
		}
		for _, tc := range tests {
			if math.Abs(tc.got-tc.want) > tolerance {
				t.Errorf("%s: expected %f, got %f", tc.name, tc.want, tc.got)
			}
		}
	})
	t.Run("celsius and fahrenheit round trip", func(t *testing.T) {
		for c := -60.0; c <= 60; c += 0.7 {
			if got := FahrenheitToCelsius(CelsiusToFahrenheit(c)); math.Abs(got-c) > tolerance {
				t.Errorf("round trip of %f returned %f", c, got)
			}
			f := c*2 + 10
			if got := CelsiusToFahrenheit(FahrenheitToCelsius(f)); math.Abs(got-f) > tolerance {
				t.Errorf("round trip of %f°F returned %f", f, got)
			}
		}
	})
	t.Run("convert temperature by label", func(t *testing.T) {
		conv, err := TemperatureConverter(Fahrenheit)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got := conv(293.15); math.Abs(got-68) > tolerance {
			t.Errorf("expected 68°F, got %f", got)
		}
		if _, err = TemperatureConverter("rankine"); err == nil {
			t.Error("expected unsupported unit to fail")
		}
	})
}

func TestSpeedConversions(t *testing.T) {
	t.Run("10 m/s is 22.3694 mph", func(t *testing.T) {
		if got := MPSToMPH(10); math.Abs(got-22.3694) > 0.001 {
			t.Errorf("expected 22.3694, got %f", got)
		}
	})
	t.Run("factor is exact to stated precision", func(t *testing.T) {
		if got := MPSToMPH(1); got != 2.23694 {
			t.Errorf("expected 2.23694, got %v", got)
		}
	})
	t.Run("convert speed by label", func(t *testing.T) {
		tests := []struct {
			unit string
			want float64
		}{
			{MPS, 10}, {MPH, 22.3694}, {KPH, 36},
		}
		for _, tc := range tests {
			conv, err := SpeedConverter(tc.unit)
			if err != nil {
				t.Fatalf("unexpected error for %s: %s", tc.unit, err)
			}
			if got := conv(10); math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("%s: expected %f, got %f", tc.unit, tc.want, got)
			}
		}
		if _, err := SpeedConverter("knots"); err == nil {
			t.Error("expected unsupported unit to fail")
		}
	})
}

func TestKnotsFactor(t *testing.T) {
	tests := []struct {
		unit  string
		speed float64
		want  float64
	}{
		{MPS, 10, 19.43844},
		{MPH, MPSToMPH(10), 19.43844},
		{KPH, 36, 19.43844},
		{Knots, 12, 12},
	}
	for _, tc := range tests {
		t.Run(tc.unit, func(t *testing.T) {
			factor, err := KnotsFactor(tc.unit)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got := tc.speed * factor; math.Abs(got-tc.want) > 1e-3 {
				t.Errorf("expected %f kt, got %f", tc.want, got)
			}
		})
	}
	t.Run("unsupported unit fails", func(t *testing.T) {
		if _, err := KnotsFactor("furlongs/fortnight"); err == nil {
			t.Error("expected unsupported unit to fail")
		}
	})
}
