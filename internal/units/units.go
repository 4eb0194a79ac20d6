// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package units provides the fixed unit conversions applied to analysis fields. Upstream grids
// carry temperatures in Kelvin and wind in meters per second.
package units

import "fmt"

// Unit labels used in colour bar captions.
const (
	Fahrenheit = "°F"
	Celsius    = "°C"
	Kelvin     = "K"
	Percent    = "%"
	MPS        = "m/s"
	MPH        = "mph"
	KPH        = "km/h"
	Knots      = "kt"
)

// MPSToMPHFactor is the multiplicative factor from meters per second to miles per hour.
const MPSToMPHFactor = 2.23694

const kelvinOffset = 273.15

// KelvinToCelsius converts a temperature from Kelvin to degrees Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// KelvinToFahrenheit converts a temperature from Kelvin to degrees Fahrenheit.
func KelvinToFahrenheit(k float64) float64 {
	return CelsiusToFahrenheit(KelvinToCelsius(k))
}

// CelsiusToFahrenheit converts degrees Celsius to degrees Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts degrees Fahrenheit to degrees Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// MPSToMPH converts a speed from meters per second to miles per hour.
func MPSToMPH(mps float64) float64 {
	return mps * MPSToMPHFactor
}

// SpeedConverter returns the conversion from meters per second to the target unit label.
func SpeedConverter(target string) (func(float64) float64, error) {
	switch target {
	case MPS:
		return func(v float64) float64 { return v }, nil
	case MPH:
		return MPSToMPH, nil
	case KPH:
		return func(v float64) float64 { return v * 3.6 }, nil
	default:
		return nil, fmt.Errorf("unsupported speed unit: %s", target)
	}
}

// TemperatureConverter returns the conversion from Kelvin to the target unit label.
func TemperatureConverter(target string) (func(float64) float64, error) {
	switch target {
	case Kelvin:
		return func(v float64) float64 { return v }, nil
	case Celsius:
		return KelvinToCelsius, nil
	case Fahrenheit:
		return KelvinToFahrenheit, nil
	default:
		return nil, fmt.Errorf("unsupported temperature unit: %s", target)
	}
}

// KnotsFactor returns the multiplicative factor from the given speed unit label to knots.
func KnotsFactor(from string) (float64, error) {
	switch from {
	case Knots:
		return 1, nil
	case MPS:
		return 1.943844, nil
	case MPH:
		return 0.868976, nil
	case KPH:
		return 0.539957, nil
	default:
		return 0, fmt.Errorf("unsupported speed unit: %s", from)
	}
}
