// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package thermo

import (
	"math"
	"testing"
)

func TestRelativeHumidity(t *testing.T) {
	t.Run("saturated air is 100 percent", func(t *testing.T) {
		for _, temp := range []float64{-30, 0, 20, 45} {
			if got := RelativeHumidity(temp, temp); math.Abs(got-100) > 1e-9 {
				t.Errorf("RH(%f, %f): expected 100, got %f", temp, temp, got)
			}
		}
	})
	t.Run("known value", func(t *testing.T) {
		// 30°C with a 10°C dew point is close to 28.9%
		got := RelativeHumidity(30, 10)
		if math.Abs(got-28.9) > 0.2 {
			t.Errorf("expected about 28.9, got %f", got)
		}
	})
	t.Run("bounded for dew point at or below temperature", func(t *testing.T) {
		for temp := -40.0; temp <= 50; temp += 5 {
			for dew := temp - 60; dew <= temp; dew += 2.5 {
				got := RelativeHumidity(temp, dew)
				if got < 0 || got > 100+1e-9 {
					t.Fatalf("RH(%f, %f) out of bounds: %f", temp, dew, got)
				}
			}
		}
	})
	t.Run("nan propagates", func(t *testing.T) {
		if !math.IsNaN(RelativeHumidity(math.NaN(), 10)) {
			t.Error("expected NaN for NaN temperature")
		}
	})
}

func TestDewPoint(t *testing.T) {
	t.Run("inverts relative humidity", func(t *testing.T) {
		for _, rh := range []float64{5, 25, 50, 75, 100} {
			dew := DewPoint(20, rh)
			if got := RelativeHumidity(20, dew); math.Abs(got-rh) > 1e-6 {
				t.Errorf("expected RH %f back, got %f", rh, got)
			}
		}
	})
	t.Run("non-positive humidity has no dew point", func(t *testing.T) {
		if !math.IsNaN(DewPoint(20, 0)) {
			t.Error("expected NaN for zero humidity")
		}
	})
}
