// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package shapes loads boundary and basemap geometry from ESRI shapefiles.
package shapes

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/jonas-p/go-shp"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/refsys"
)

var (
	ErrUnsupportedShape = errors.New("unsupported shape type")
	ErrNoPath           = errors.New("no shapefile configured")
)

// Point is a longitude/latitude pair.
type Point struct {
	X, Y float64
}

// Layer is the geometry of one shapefile. Every part is a ring for polygon files and a line for
// polyline files.
type Layer struct {
	Name    string
	Parts   [][]Point
	Polygon bool
	Bounds  geo.Bounds
}

// Clip returns the parts whose bounding box intersects b.
func (l *Layer) Clip(b geo.Bounds) *Layer {
	out := &Layer{Name: l.Name, Polygon: l.Polygon, Bounds: b}
	for _, part := range l.Parts {
		if partBounds(part).Intersects(b) {
			out.Parts = append(out.Parts, part)
		}
	}
	return out
}

// Load reads every polygon or polyline of the shapefile at path.
func Load(name, path string) (*Layer, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile %s: %w", path, err)
	}
	defer func() { _ = reader.Close() }()

	layer := &Layer{Name: name}
	first := true
	for reader.Next() {
		_, shape := reader.Shape()
		var parts []int32
		var points []shp.Point
		switch s := shape.(type) {
		case *shp.Polygon:
			layer.Polygon = true
			parts, points = s.Parts, s.Points
		case *shp.PolyLine:
			parts, points = s.Parts, s.Points
		case *shp.PolygonZ:
			layer.Polygon = true
			parts, points = s.Parts, s.Points
		case *shp.PolyLineZ:
			parts, points = s.Parts, s.Points
		case *shp.Null:
			continue
		default:
			return nil, fmt.Errorf("%w in %s: %T", ErrUnsupportedShape, path, shape)
		}
		for i, start := range parts {
			end := int32(len(points))
			if i+1 < len(parts) {
				end = parts[i+1]
			}
			if start < 0 || start >= end || int(end) > len(points) {
				continue
			}
			part := make([]Point, 0, end-start)
			for _, p := range points[start:end] {
				part = append(part, Point{X: p.X, Y: p.Y})
			}
			layer.Parts = append(layer.Parts, part)
			pb := partBounds(part)
			if first {
				layer.Bounds, first = pb, false
				continue
			}
			layer.Bounds = union(layer.Bounds, pb)
		}
	}
	if err = reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shapefile %s: %w", path, err)
	}
	return layer, nil
}

func partBounds(part []Point) geo.Bounds {
	b := geo.Bounds{West: math.Inf(1), East: math.Inf(-1), South: math.Inf(1), North: math.Inf(-1)}
	for _, p := range part {
		b.West = math.Min(b.West, p.X)
		b.East = math.Max(b.East, p.X)
		b.South = math.Min(b.South, p.Y)
		b.North = math.Max(b.North, p.Y)
	}
	return b
}

func union(a, b geo.Bounds) geo.Bounds {
	return geo.Bounds{
		West:  math.Min(a.West, b.West),
		East:  math.Max(a.East, b.East),
		South: math.Min(a.South, b.South),
		North: math.Max(a.North, b.North),
	}
}

// Feature names a basemap layer that is not a boundary.
type Feature string

const (
	Ocean     Feature = "ocean"
	Land      Feature = "land"
	Coastline Feature = "coastline"
	Lakes     Feature = "lakes"
	Rivers    Feature = "rivers"
)

// Paths maps layers to shapefile locations.
type Paths struct {
	Boundaries map[refsys.Layer]string
	Features   map[Feature]string
}

// Set is the geometry a single map needs.
type Set struct {
	Boundaries map[refsys.Layer]*Layer
	Features   map[Feature]*Layer
}

// Loader reads shapefiles once and keeps them for later maps.
type Loader struct {
	paths Paths
	log   *logger.Logger

	mu    sync.Mutex
	cache map[string]*Layer
}

// NewLoader returns a Loader for the given paths.
func NewLoader(paths Paths, log *logger.Logger) *Loader {
	return &Loader{paths: paths, log: log, cache: make(map[string]*Layer)}
}

func (l *Loader) load(name, path string) (*Layer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if layer, ok := l.cache[path]; ok {
		return layer, nil
	}
	layer, err := Load(name, path)
	if err != nil {
		return nil, err
	}
	l.log.Debug("loaded shapefile", slog.String("layer", name), slog.String("path", path),
		slog.Int("parts", len(layer.Parts)))
	l.cache[path] = layer
	return layer, nil
}

// Layers returns the requested boundary layers and basemap features clipped to bounds. A boundary
// layer without configured path is an error. Features without a path are skipped.
func (l *Loader) Layers(bounds geo.Bounds, boundaries []refsys.Layer, features []Feature) (*Set, error) {
	set := &Set{
		Boundaries: make(map[refsys.Layer]*Layer),
		Features:   make(map[Feature]*Layer),
	}
	for _, b := range boundaries {
		path, ok := l.paths.Boundaries[b]
		if !ok || path == "" {
			return nil, errs.Config("load boundaries", fmt.Errorf("%w for %s", ErrNoPath, b))
		}
		layer, err := l.load(b.String(), path)
		if err != nil {
			return nil, errs.Config("load boundaries", err)
		}
		set.Boundaries[b] = layer.Clip(bounds)
	}
	for _, f := range features {
		path, ok := l.paths.Features[f]
		if !ok || path == "" {
			continue
		}
		layer, err := l.load(string(f), path)
		if err != nil {
			return nil, errs.Config("load features", err)
		}
		set.Features[f] = layer.Clip(bounds)
	}
	return set, nil
}
