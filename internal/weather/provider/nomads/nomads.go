// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nomads implements a weather.Provider for the RTMA 2.5 km analysis served by the NOMADS
// GrADS Data Server over OPeNDAP.
package nomads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/http"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/weather"
)

const (
	name = "nomads-rtma"

	DefaultBaseURL  = "https://nomads.ncep.noaa.gov/dods/rtma2p5"
	DefaultLookback = 4
	DefaultTimeout  = time.Minute * 2
)

// ErrCycleUnavailable is returned when the requested analysis cycle has not been published.
var ErrCycleUnavailable = errors.New("analysis cycle not available")

// Config controls where and how the provider queries the server.
type Config struct {
	BaseURL string
	// Lookback is the number of hourly cycles Latest walks back before giving up.
	Lookback int
	Timeout  time.Duration
	// Stride requests every n-th grid point from the server. 0 and 1 mean full resolution.
	Stride int
}

type NOMADS struct {
	config Config
	log    *logger.Logger
	http   *http.Client
}

func New(http *http.Client, log *logger.Logger, config Config) (*NOMADS, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Lookback < 0 {
		config.Lookback = 0
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Stride < 1 {
		config.Stride = 1
	}

	return &NOMADS{config: config, http: http, log: log}, nil
}

func (n *NOMADS) Name() string {
	return name
}

// Latest returns the newest published cycle at or before now, walking back hour by hour.
func (n *NOMADS) Latest(ctx context.Context, now time.Time, vars []string, bounds geo.Bounds) (*weather.Dataset, error) {
	cycle := now.UTC().Truncate(time.Hour)
	var lastErr error
	for i := 0; i <= n.config.Lookback; i++ {
		ds, err := n.At(ctx, cycle, vars, bounds)
		if err == nil {
			return ds, nil
		}
		if !errors.Is(err, ErrCycleUnavailable) {
			return nil, err
		}
		n.log.Debug("analysis cycle not yet published, trying previous hour",
			slog.Time("cycle", cycle))
		lastErr = err
		cycle = cycle.Add(-time.Hour)
	}
	return nil, errs.Fetch("latest analysis",
		fmt.Errorf("no cycle within %d hours of %s: %w", n.config.Lookback, now.UTC().Format(time.RFC3339),
			lastErr))
}

// At returns the analysis for the cycle containing valid, cropped to bounds.
func (n *NOMADS) At(ctx context.Context, valid time.Time, vars []string, bounds geo.Bounds) (*weather.Dataset, error) {
	if len(vars) == 0 {
		return nil, errs.Config("fetch analysis", errors.New("no variables requested"))
	}
	if err := bounds.Validate(); err != nil {
		return nil, errs.Config("fetch analysis", err)
	}
	cycle := valid.UTC().Truncate(time.Hour)
	endpoint := n.CycleURL(cycle) + ".ascii"

	body, err := n.get(ctx, endpoint, "lat,lon")
	if err != nil {
		return nil, err
	}
	axes, err := parseASCII(bytes.NewReader(body))
	if err != nil {
		return nil, n.unavailableOr(cycle, body, err)
	}
	lats, latOK := axes["lat"]
	lons, lonOK := axes["lon"]
	if !latOK || !lonOK {
		return nil, errs.Fetch("fetch axes", fmt.Errorf("response for %s lacks lat/lon", endpoint))
	}
	lonValues := make([]float64, len(lons.Values))
	for i, v := range lons.Values {
		lonValues[i] = geo.NormalizeLon(v)
	}

	y0, y1, ok := indexRange(lats.Values, bounds.South, bounds.North)
	if !ok {
		return nil, errs.Shape("crop grid", fmt.Errorf("latitudes %s outside analysis domain", bounds))
	}
	x0, x1, ok := indexRange(lonValues, bounds.West, bounds.East)
	if !ok {
		return nil, errs.Shape("crop grid", fmt.Errorf("longitudes %s outside analysis domain", bounds))
	}

	stride := n.config.Stride
	constraint := fmt.Sprintf("[0:0][%d:%d:%d][%d:%d:%d]", y0, stride, y1, x0, stride, x1)
	query := make([]string, len(vars))
	for i, v := range vars {
		query[i] = v + constraint
	}
	n.log.Debug("fetching RTMA analysis", slog.String("url", endpoint),
		slog.String("constraint", constraint), slog.Any("vars", vars))
	body, err = n.get(ctx, endpoint, strings.Join(query, ","))
	if err != nil {
		return nil, err
	}
	arrays, err := parseASCII(bytes.NewReader(body))
	if err != nil {
		return nil, n.unavailableOr(cycle, body, err)
	}

	grid := weather.Grid{
		Lats: strided(lats.Values, y0, y1, stride),
		Lons: strided(lonValues, x0, x1, stride),
	}
	return buildDataset(name, cycle, grid, arrays, vars)
}

// CycleURL returns the dataset URL of the given hourly cycle.
func (n *NOMADS) CycleURL(cycle time.Time) string {
	cycle = cycle.UTC()
	return fmt.Sprintf("%s/rtma2p5%s/rtma2p5_anl_%02dz", n.config.BaseURL, cycle.Format("20060102"),
		cycle.Hour())
}

func (n *NOMADS) get(ctx context.Context, endpoint, query string) ([]byte, error) {
	body, err := n.http.GetRawWithTimeout(ctx, endpoint, query, nil, n.config.Timeout)
	if err != nil {
		if errors.Is(err, http.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCycleUnavailable, endpoint)
		}
		return nil, errs.Fetch("query "+endpoint, err)
	}
	return body, nil
}

// unavailableOr maps the GrADS "not an available dataset" page to ErrCycleUnavailable.
func (n *NOMADS) unavailableOr(cycle time.Time, body []byte, err error) error {
	if bytes.Contains(body, []byte("not an available dataset")) ||
		bytes.Contains(body, []byte("No such file")) {
		return fmt.Errorf("%w: %s", ErrCycleUnavailable, cycle.Format(time.RFC3339))
	}
	return errs.Fetch("parse response", err)
}

// LoadDataset builds a dataset from a saved OPeNDAP ASCII response that contains lat and lon map
// vectors, as written by appending ".ascii?var" to a cycle URL.
func LoadDataset(r io.Reader, valid time.Time, vars []string) (*weather.Dataset, error) {
	arrays, err := parseASCII(r)
	if err != nil {
		return nil, errs.Shape("load dataset", err)
	}
	lats, latOK := arrays["lat"]
	lons, lonOK := arrays["lon"]
	if !latOK || !lonOK {
		return nil, errs.Shape("load dataset", errors.New("dump lacks lat/lon vectors"))
	}
	lonValues := make([]float64, len(lons.Values))
	for i, v := range lons.Values {
		lonValues[i] = geo.NormalizeLon(v)
	}
	grid := weather.Grid{Lats: lats.Values, Lons: lonValues}
	if len(vars) == 0 {
		for key := range arrays {
			if key != "lat" && key != "lon" && key != "time" {
				vars = append(vars, key)
			}
		}
	}
	return buildDataset("file", valid, grid, arrays, vars)
}

func buildDataset(source string, valid time.Time, grid weather.Grid, arrays map[string]array,
	vars []string,
) (*weather.Dataset, error) {
	ds := weather.NewDataset(source, valid, grid)
	rows, cols := grid.Dims()
	for _, v := range vars {
		arr, ok := arrays[v]
		if !ok {
			return nil, errs.Shape("build dataset", fmt.Errorf("%w: %s", weather.ErrMissingVariable, v))
		}
		if len(arr.Values) != rows*cols {
			return nil, errs.Newf(errs.ErrDataShape, "build dataset",
				"variable %s has %d values, grid is %dx%d", v, len(arr.Values), rows, cols)
		}
		field, err := weather.NewField(v, unitsOf(v), rows, cols, arr.Values)
		if err != nil {
			return nil, err
		}
		if err = ds.Add(field); err != nil {
			return nil, err
		}
	}
	return ds, ds.Validate()
}

func unitsOf(variable string) string {
	switch variable {
	case weather.VarTemperature, weather.VarDewPoint:
		return "K"
	case weather.VarWindU, weather.VarWindV, weather.VarWindSpeed, weather.VarWindGust:
		return "m/s"
	case weather.VarCloudCover:
		return "%"
	default:
		return ""
	}
}

// indexRange returns the first and last index of the ascending axis within [lo, hi].
func indexRange(axis []float64, lo, hi float64) (int, int, bool) {
	first, last := -1, -1
	for i, v := range axis {
		if v < lo || v > hi {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

func strided(axis []float64, from, to, stride int) []float64 {
	out := make([]float64, 0, (to-from)/stride+1)
	for i := from; i <= to; i += stride {
		out = append(out, axis[i])
	}
	return out
}
