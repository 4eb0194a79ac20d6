// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"errors"
	"fmt"
	"math"
)

const (
	EarthRadius = 6371000.0 // meters
)

var (
	ErrInvalidBounds = errors.New("invalid bounding box")
)

// Coordinate represents a geographic coordinate in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DistanceTo returns the great-circle distance in meters between two coordinates using the
// Haversine formula.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dLat := (c.Lat - other.Lat) * math.Pi / 180
	dLon := (c.Lon - other.Lon) * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Bounds is a west/east/south/north bounding box in degrees. Longitudes are in [-180, 180].
type Bounds struct {
	West  float64
	East  float64
	South float64
	North float64
}

// Validate checks the box is non-empty and within the valid coordinate range.
func (b Bounds) Validate() error {
	sw := Coordinate{Lat: b.South, Lon: b.West}
	ne := Coordinate{Lat: b.North, Lon: b.East}
	if !sw.Valid() || !ne.Valid() {
		return fmt.Errorf("%w: coordinates out of range: %s", ErrInvalidBounds, b)
	}
	if b.West >= b.East {
		return fmt.Errorf("%w: west (%.2f) must be less than east (%.2f)", ErrInvalidBounds, b.West, b.East)
	}
	if b.South >= b.North {
		return fmt.Errorf("%w: south (%.2f) must be less than north (%.2f)", ErrInvalidBounds, b.South,
			b.North)
	}
	return nil
}

// LonSpan returns the east-west extent in degrees.
func (b Bounds) LonSpan() float64 { return b.East - b.West }

// LatSpan returns the north-south extent in degrees.
func (b Bounds) LatSpan() float64 { return b.North - b.South }

// Center returns the midpoint of the box.
func (b Bounds) Center() Coordinate {
	return Coordinate{Lat: (b.South + b.North) / 2, Lon: (b.West + b.East) / 2}
}

// Extent returns the larger of the two spans in degrees, with the longitude span scaled by the
// cosine of the central latitude so boxes near the pole are not overestimated.
func (b Bounds) Extent() float64 {
	lon := b.LonSpan() * math.Cos(b.Center().Lat*math.Pi/180)
	return math.Max(lon, b.LatSpan())
}

// Contains reports whether the coordinate lies inside the box (inclusive).
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lon >= b.West && c.Lon <= b.East
}

// Intersects reports whether two boxes overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.West <= o.East && o.West <= b.East && b.South <= o.North && o.South <= b.North
}

// Pad returns the box grown by deg degrees on every side, clamped to the valid range.
func (b Bounds) Pad(deg float64) Bounds {
	return Bounds{
		West:  math.Max(-180, b.West-deg),
		East:  math.Min(180, b.East+deg),
		South: math.Max(-90, b.South-deg),
		North: math.Min(90, b.North+deg),
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[W %.2f, E %.2f, S %.2f, N %.2f]", b.West, b.East, b.South, b.North)
}

// NormalizeLon maps a longitude in [0, 360) to [-180, 180).
func NormalizeLon(lon float64) float64 {
	if lon >= 180 {
		return lon - 360
	}
	if lon < -180 {
		return lon + 360
	}
	return lon
}
