// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package product

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ColorMap names a colour scale.
type ColorMap string

const (
	MapTemperature ColorMap = "temperature"
	MapDewPoint    ColorMap = "dew_point"
	MapHumidity    ColorMap = "relative_humidity"
	MapWind        ColorMap = "wind"
	MapCloud       ColorMap = "cloud"
	MapDiverging   ColorMap = "blue_red"
	MapDrying      ColorMap = "red_blue"
	MapMoisture    ColorMap = "tan_blue"
	MapCritical    ColorMap = "critical"
)

// ramps are control colours interpolated linearly.
var ramps = map[ColorMap][]color.NRGBA{
	MapTemperature: {
		{R: 0x4b, G: 0x00, B: 0x82, A: 0xff},
		{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
		{R: 0x00, G: 0xbf, B: 0xff, A: 0xff},
		{R: 0x00, G: 0xc8, B: 0x00, A: 0xff},
		{R: 0xff, G: 0xff, B: 0x00, A: 0xff},
		{R: 0xff, G: 0x8c, B: 0x00, A: 0xff},
		{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		{R: 0x80, G: 0x00, B: 0x00, A: 0xff},
	},
	MapDewPoint: {
		{R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
		{R: 0xd2, G: 0xb4, B: 0x8c, A: 0xff},
		{R: 0xf5, G: 0xf5, B: 0xdc, A: 0xff},
		{R: 0x90, G: 0xee, B: 0x90, A: 0xff},
		{R: 0x22, G: 0x8b, B: 0x22, A: 0xff},
		{R: 0x00, G: 0x64, B: 0x00, A: 0xff},
	},
	MapHumidity: {
		{R: 0x8b, G: 0x00, B: 0x00, A: 0xff},
		{R: 0xff, G: 0x45, B: 0x00, A: 0xff},
		{R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
		{R: 0xad, G: 0xff, B: 0x2f, A: 0xff},
		{R: 0x32, G: 0xcd, B: 0x32, A: 0xff},
		{R: 0x00, G: 0x64, B: 0x00, A: 0xff},
	},
	MapCloud: {
		{R: 0x00, G: 0xbf, B: 0xff, A: 0xff},
		{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
		{R: 0x69, G: 0x69, B: 0x69, A: 0xff},
	},
	MapCritical: {
		{R: 0xff, G: 0xff, B: 0xff, A: 0x00},
		{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff},
	},
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// Palette returns n colours of the named map.
func (m ColorMap) Palette(n int) palette.Palette {
	if n < 1 {
		n = 1
	}
	switch m {
	case MapWind:
		return fromColorMap(moreland.Kindlmann(), n, false)
	case MapDiverging:
		return fromColorMap(moreland.SmoothBlueRed(), n, false)
	case MapDrying:
		return fromColorMap(moreland.SmoothBlueRed(), n, true)
	case MapMoisture:
		return fromColorMap(moreland.SmoothBlueTan(), n, true)
	}
	ramp, ok := ramps[m]
	if !ok {
		ramp = ramps[MapTemperature]
	}
	return interpolate(ramp, n)
}

func fromColorMap(cm palette.ColorMap, n int, reverse bool) palette.Palette {
	cm.SetMin(0)
	cm.SetMax(1)
	out := make(colors, n)
	for i := range out {
		v := 0.5
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		if reverse {
			v = 1 - v
		}
		c, err := cm.At(v)
		if err != nil {
			c = color.Transparent
		}
		out[i] = c
	}
	return out
}

func interpolate(ramp []color.NRGBA, n int) palette.Palette {
	out := make(colors, n)
	if n == 1 || len(ramp) == 1 {
		for i := range out {
			out[i] = ramp[0]
		}
		return out
	}
	segments := float64(len(ramp) - 1)
	for i := range out {
		pos := float64(i) / float64(n-1) * segments
		j := int(pos)
		if j >= len(ramp)-1 {
			out[i] = ramp[len(ramp)-1]
			continue
		}
		f := pos - float64(j)
		a, b := ramp[j], ramp[j+1]
		out[i] = color.NRGBA{
			R: lerp(a.R, b.R, f),
			G: lerp(a.G, b.G, f),
			B: lerp(a.B, b.B, f),
			A: lerp(a.A, b.A, f),
		}
	}
	return out
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
