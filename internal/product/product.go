// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package product holds the catalogue of map products: what they show, which analysis variables
// they need, and how they are coloured.
package product

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/plot/palette"

	"github.com/wneessen/wxmaps/internal/units"
	"github.com/wneessen/wxmaps/internal/weather"
)

// Quantity is the physical quantity a product shows.
type Quantity int

const (
	Temperature Quantity = iota
	DewPoint
	RelativeHumidity
	WindSpeed
	Wind
	CloudCover
	CriticalFire
)

// Names of the products.
const (
	NameTemperature         = "temperature"
	NameDewPoint            = "dew_point"
	NameRelativeHumidity    = "relative_humidity"
	NameWindSpeed           = "wind_speed"
	NameWind                = "wind_speed_and_direction"
	NameCloudCover          = "total_cloud_cover"
	NameLowRHHighWind       = "low_rh_and_high_wind"
	NameTemperature24h      = "temperature_24h"
	NameDewPoint24h         = "dew_point_24h"
	NameRelativeHumidity24h = "relative_humidity_24h"
	NameWindSpeed24h        = "wind_speed_24h"
	NameCloudCover24h       = "total_cloud_cover_24h"
)

var ErrUnknownProduct = errors.New("unknown product")

// Product describes one map type.
type Product struct {
	Name     string
	Quantity Quantity
	// Title is the english msgid of the left hand title.
	Title string
	Units string
	// Variables are the analysis variables to request.
	Variables []string
	// Delta marks 24-hour comparisons.
	Delta    bool
	ColorMap ColorMap
	Levels   func(valid time.Time) Levels
	// Samples reports whether value annotations are drawn by default.
	Samples bool
	// Vectors reports whether wind barbs or arrows are drawn.
	Vectors bool
}

var (
	tempVars  = []string{weather.VarTemperature}
	dewVars   = []string{weather.VarDewPoint}
	rhVars    = []string{weather.VarTemperature, weather.VarDewPoint}
	speedVars = []string{weather.VarWindSpeed}
	windVars  = []string{weather.VarWindSpeed, weather.VarWindU, weather.VarWindV}
	cloudVars = []string{weather.VarCloudCover}
	fireVars  = []string{weather.VarTemperature, weather.VarDewPoint, weather.VarWindSpeed}
)

var catalogue = map[string]Product{
	NameTemperature: {
		Quantity: Temperature, Title: "RTMA Temperature", Units: units.Fahrenheit,
		Variables: tempVars, ColorMap: MapTemperature, Levels: seasonal(temperatureLevels), Samples: true,
	},
	NameDewPoint: {
		Quantity: DewPoint, Title: "RTMA Dew Point", Units: units.Fahrenheit,
		Variables: dewVars, ColorMap: MapDewPoint, Levels: seasonal(dewPointLevels), Samples: true,
	},
	NameRelativeHumidity: {
		Quantity: RelativeHumidity, Title: "RTMA Relative Humidity", Units: units.Percent,
		Variables: rhVars, ColorMap: MapHumidity,
		Levels:  fixed(Levels{Min: 0, Max: 100, Step: 1, TickStep: 10}),
		Samples: true,
	},
	NameWindSpeed: {
		Quantity: WindSpeed, Title: "RTMA Wind Speed", Units: units.MPH,
		Variables: speedVars, ColorMap: MapWind,
		Levels:  fixed(Levels{Min: 0, Max: 60, Step: 1, TickStep: 5}),
		Samples: true,
	},
	NameWind: {
		Quantity: Wind, Title: "RTMA Wind Speed & Direction", Units: units.MPH,
		Variables: windVars, ColorMap: MapWind,
		Levels:  fixed(Levels{Min: 0, Max: 60, Step: 1, TickStep: 5}),
		Vectors: true,
	},
	NameCloudCover: {
		Quantity: CloudCover, Title: "RTMA Total Cloud Cover", Units: units.Percent,
		Variables: cloudVars, ColorMap: MapCloud,
		Levels:  fixed(Levels{Min: 0, Max: 100, Step: 1, TickStep: 10}),
		Samples: true,
	},
	NameLowRHHighWind: {
		Quantity: CriticalFire, Title: "RTMA Low RH & High Wind", Units: "",
		Variables: fireVars, ColorMap: MapCritical,
		Levels: fixed(Levels{Min: 0, Max: 1, Step: 1, TickStep: 1}),
	},
	NameTemperature24h: {
		Quantity: Temperature, Title: "RTMA 24-Hour Temperature Change", Units: units.Fahrenheit,
		Variables: tempVars, Delta: true, ColorMap: MapDiverging,
		Levels:  fixed(Levels{Min: -30, Max: 30, Step: 1, TickStep: 5}),
		Samples: true,
	},
	NameDewPoint24h: {
		Quantity: DewPoint, Title: "RTMA 24-Hour Dew Point Change", Units: units.Fahrenheit,
		Variables: dewVars, Delta: true, ColorMap: MapMoisture,
		Levels:  fixed(Levels{Min: -30, Max: 30, Step: 1, TickStep: 5}),
		Samples: true,
	},
	NameRelativeHumidity24h: {
		Quantity: RelativeHumidity, Title: "RTMA 24-Hour Relative Humidity Change", Units: units.Percent,
		Variables: rhVars, Delta: true, ColorMap: MapDrying,
		Levels:  fixed(Levels{Min: -60, Max: 60, Step: 1, TickStep: 10}),
		Samples: true,
	},
	NameWindSpeed24h: {
		Quantity: WindSpeed, Title: "RTMA 24-Hour Wind Speed Change", Units: units.MPH,
		Variables: speedVars, Delta: true, ColorMap: MapDiverging,
		Levels:  fixed(Levels{Min: -30, Max: 30, Step: 1, TickStep: 5}),
		Samples: true,
	},
	NameCloudCover24h: {
		Quantity: CloudCover, Title: "RTMA 24-Hour Total Cloud Cover Change", Units: units.Percent,
		Variables: cloudVars, Delta: true, ColorMap: MapDiverging,
		Levels:  fixed(Levels{Min: -100, Max: 100, Step: 5, TickStep: 20}),
		Samples: true,
	},
}

// Lookup returns the named product.
func Lookup(name string) (Product, error) {
	p, ok := catalogue[name]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	p.Name = name
	return p, nil
}

// Names returns every product name, sorted.
func Names() []string {
	out := make([]string, 0, len(catalogue))
	for name := range catalogue {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Palette returns one colour per contour band of the levels.
func (p Product) Palette(l Levels) palette.Palette {
	return p.ColorMap.Palette(l.Count())
}
