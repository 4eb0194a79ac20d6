// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package product

import (
	"math"
	"time"
)

// Season is a calendar band used to pick temperature and dew point scales.
type Season int

const (
	Cold Season = iota
	Shoulder
	Warm
)

func (s Season) String() string {
	switch s {
	case Warm:
		return "warm"
	case Shoulder:
		return "shoulder"
	default:
		return "cold"
	}
}

// SeasonOf returns the band of the UTC month of t: May to September is warm, March, April, October
// and November are shoulder months and December to February is cold.
func SeasonOf(t time.Time) Season {
	switch t.UTC().Month() {
	case time.May, time.June, time.July, time.August, time.September:
		return Warm
	case time.March, time.April, time.October, time.November:
		return Shoulder
	default:
		return Cold
	}
}

// Levels is an evenly spaced contour range.
type Levels struct {
	Min  float64
	Max  float64
	Step float64
	// TickStep is the colour bar label spacing on regional maps.
	TickStep float64
}

// Count returns the number of contour levels.
func (l Levels) Count() int {
	if !(l.Step > 0) || l.Max < l.Min {
		return 0
	}
	return int(math.Floor((l.Max-l.Min)/l.Step+1e-9)) + 1
}

// Values returns every contour level from Min to Max.
func (l Levels) Values() []float64 {
	n := l.Count()
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Min + float64(i)*l.Step
	}
	return out
}

// Ticks returns the colour bar tick positions. National maps use twice the spacing.
func (l Levels) Ticks(national bool) []float64 {
	step := l.TickStep
	if !(step > 0) {
		step = l.Step
	}
	if national {
		step *= 2
	}
	var out []float64
	for v := l.Min; v <= l.Max+1e-9; v += step {
		out = append(out, math.Round(v*1e6)/1e6)
	}
	return out
}

// Quantize returns the index of the level band v falls in, clamped to the range. NaN maps to -1.
func (l Levels) Quantize(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	n := l.Count()
	if n == 0 {
		return -1
	}
	i := int(math.Floor((v - l.Min) / l.Step))
	return min(max(i, 0), n-1)
}

// Level returns the lower bound of band i.
func (l Levels) Level(i int) float64 {
	return l.Min + float64(i)*l.Step
}

// Seasonal scales in °F.
var (
	temperatureLevels = map[Season]Levels{
		Warm:     {Min: 30, Max: 120, Step: 1, TickStep: 5},
		Shoulder: {Min: 0, Max: 100, Step: 1, TickStep: 5},
		Cold:     {Min: -30, Max: 80, Step: 1, TickStep: 5},
	}
	dewPointLevels = map[Season]Levels{
		Warm:     {Min: 20, Max: 80, Step: 1, TickStep: 5},
		Shoulder: {Min: 0, Max: 70, Step: 1, TickStep: 5},
		Cold:     {Min: -20, Max: 60, Step: 1, TickStep: 5},
	}
)

func seasonal(table map[Season]Levels) func(time.Time) Levels {
	return func(t time.Time) Levels {
		return table[SeasonOf(t)]
	}
}

func fixed(l Levels) func(time.Time) Levels {
	return func(time.Time) Levels {
		return l
	}
}
