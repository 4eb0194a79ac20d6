// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package thermo implements the moisture relations used for derived fields.
package thermo

import "math"

// Bolton (1980) constants for saturation vapor pressure over water.
const (
	satVaporPressure0 = 6.112 // hPa at 0°C
	boltonA           = 17.67
	boltonB           = 243.5 // °C
)

// SaturationVaporPressure returns the saturation vapor pressure in hPa for a temperature in °C.
func SaturationVaporPressure(tempC float64) float64 {
	return satVaporPressure0 * math.Exp(boltonA*tempC/(tempC+boltonB))
}

// RelativeHumidity returns the relative humidity in percent from temperature and dew point in °C.
// The result lies in [0, 100] whenever dewC <= tempC. NaN inputs yield NaN.
func RelativeHumidity(tempC, dewC float64) float64 {
	return 100 * SaturationVaporPressure(dewC) / SaturationVaporPressure(tempC)
}

// DewPoint inverts RelativeHumidity: it returns the dew point in °C for a temperature in °C and a
// relative humidity in percent.
func DewPoint(tempC, rh float64) float64 {
	if rh <= 0 {
		return math.NaN()
	}
	e := SaturationVaporPressure(tempC) * rh / 100
	l := math.Log(e / satVaporPressure0)
	return boltonB * l / (boltonA - l)
}
