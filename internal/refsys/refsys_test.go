// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package refsys

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_Visibility(t *testing.T) {
	tests := []struct {
		preset string
		want   []Layer
	}{
		{"States Only", []Layer{State}},
		{"States & Counties", []Layer{County, State}},
		{"GACC Only", []Layer{GACC}},
		{"GACC & PSA", []Layer{GACC, PSA}},
		{"CWA Only", []Layer{CWA}},
		{"NWS CWAs & NWS Public Zones", []Layer{CWA, PublicZone}},
		{"NWS CWAs & NWS Fire Weather Zones", []Layer{CWA, FireWeatherZone}},
		{"NWS CWAs & Counties", []Layer{County, CWA}},
		{"GACC & PSA & NWS Fire Weather Zones", []Layer{GACC, PSA, FireWeatherZone}},
		{"GACC & PSA & NWS Public Zones", []Layer{GACC, PSA, PublicZone}},
		{"GACC & PSA & NWS CWA", []Layer{GACC, PSA, CWA}},
		{"GACC & PSA & County", []Layer{GACC, PSA, County}},
		{"GACC & County", []Layer{GACC, County}},
		{"Unknown preset", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			for _, national := range []bool{false, true} {
				got := Resolve(tt.preset, national, Flags{}.With(State, County, PublicZone))
				if diff := cmp.Diff(tt.want, got.Active()); diff != "" {
					t.Errorf("visible layers mismatch, national=%t (-want +got):\n%s", national, diff)
				}
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for _, name := range Names() {
		first := Resolve(name, true, Flags{})
		for i := 0; i < 10; i++ {
			if diff := cmp.Diff(first, Resolve(name, true, Flags{})); diff != "" {
				t.Fatalf("preset %q resolved differently (-first +got):\n%s", name, diff)
			}
		}
	}
}

func TestResolve_Widths(t *testing.T) {
	tests := []struct {
		name     string
		preset   string
		national bool
		layer    Layer
		want     float64
	}{
		{"county default width", "States & Counties", false, County, 1},
		{"county national width", "States & Counties", true, County, 0.25},
		{"state national width unchanged", "States & Counties", true, State, 1},
		{"psa national width", "GACC & PSA", true, PSA, 0.25},
		{"psa regional width", "GACC & PSA", false, PSA, 1},
		{"public zones national", "NWS CWAs & NWS Public Zones", true, PublicZone, 0.25},
		{"fire weather zones national", "NWS CWAs & NWS Fire Weather Zones", true, FireWeatherZone, 0.25},
		{"cwa county national", "NWS CWAs & Counties", true, County, 0.25},
		{"gacc psa fwz detail", "GACC & PSA & NWS Fire Weather Zones", false, FireWeatherZone, 0.25},
		{"gacc psa fwz national psa", "GACC & PSA & NWS Fire Weather Zones", true, PSA, 0.5},
		{"gacc psa fwz regional psa", "GACC & PSA & NWS Fire Weather Zones", false, PSA, 1},
		{"gacc psa pz detail", "GACC & PSA & NWS Public Zones", false, PublicZone, 0.25},
		{"gacc psa cwa detail", "GACC & PSA & NWS CWA", false, CWA, 0.25},
		{"gacc psa county detail", "GACC & PSA & County", true, County, 0.25},
		{"gacc psa county national psa", "GACC & PSA & County", true, PSA, 0.5},
		{"gacc county detail", "GACC & County", false, County, 0.25},
		{"gacc width", "GACC & County", true, GACC, 1},
		{"unknown preset widths", "nope", true, County, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.preset, tt.national, Flags{}).LineWidth(tt.layer)
			if got != tt.want {
				t.Errorf("expected %s width %.2f, got %.2f", tt.layer, tt.want, got)
			}
		})
	}
}

func TestResolve_Custom(t *testing.T) {
	custom := Flags{}.With(CWA, FireWeatherZone)
	got := Resolve(Custom, true, custom)
	if diff := cmp.Diff(custom, got.Flags); diff != "" {
		t.Errorf("custom flags mismatch (-want +got):\n%s", diff)
	}
	for _, l := range Layers() {
		if got.LineWidth(l) != DefaultWidth {
			t.Errorf("expected default width for %s, got %.2f", l, got.LineWidth(l))
		}
	}
}

func TestLayers(t *testing.T) {
	want := []string{"gacc", "psa", "county", "state", "cwa", "fire_weather_zone", "public_zone"}
	var got []string
	for _, l := range Layers() {
		got = append(got, l.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("draw order mismatch (-want +got):\n%s", diff)
	}
	if Layer(42).String() != "unknown" {
		t.Errorf("expected unknown for out of range layer")
	}
}

func TestParseLayer(t *testing.T) {
	l, ok := ParseLayer(" Fire_Weather_Zone ")
	if !ok || l != FireWeatherZone {
		t.Errorf("expected fire weather zone, got %s (%t)", l, ok)
	}
	if _, ok = ParseLayer("rivers"); ok {
		t.Error("expected rivers not to be a boundary layer")
	}
}

func TestKnown(t *testing.T) {
	if !Known("GACC Only") || !Known(Custom) {
		t.Error("expected presets to be known")
	}
	if Known("gacc only") {
		t.Error("expected preset names to be case sensitive")
	}
	if len(Names()) != 14 {
		t.Errorf("expected 14 presets, got %d", len(Names()))
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"States & Counties":    "STATES_AND_COUNTIES",
		"GACC & PSA & NWS CWA": "GACC_AND_PSA_AND_NWS_CWA",
		"Custom":               "CUSTOM",
		"  CWA Only ":          "CWA_ONLY",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Slug(in); got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}
