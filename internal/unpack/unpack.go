// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package unpack turns analysis datasets into the converted and derived fields of a product.
package unpack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/product"
	"github.com/wneessen/wxmaps/internal/thermo"
	"github.com/wneessen/wxmaps/internal/units"
	"github.com/wneessen/wxmaps/internal/weather"
)

const (
	// DefaultPairTolerance is the allowed drift between a valid time pair 24 hours apart.
	DefaultPairTolerance = 30 * time.Minute
	// DefaultCriticalRH and DefaultCriticalWind are the low RH and high wind thresholds.
	DefaultCriticalRH   = 15.0
	DefaultCriticalWind = 25.0
)

var ErrNoSource = errors.New("neither a provider nor a dataset was supplied")

// Source is where the analysis comes from: a provider queried for the latest cycle, or datasets
// supplied by the caller. A supplied Prior is only used by 24-hour products; when it is missing the
// provider, if any, is asked for the cycle 24 hours before Current.
type Source struct {
	Provider weather.Provider
	Bounds   geo.Bounds
	Current  *weather.Dataset
	Prior    *weather.Dataset
}

// FromProvider fetches the latest analysis within bounds.
func FromProvider(p weather.Provider, bounds geo.Bounds) Source {
	return Source{Provider: p, Bounds: bounds}
}

// FromDatasets uses pre-fetched datasets. prior may be nil for products without a comparison.
func FromDatasets(current, prior *weather.Dataset) Source {
	return Source{Current: current, Prior: prior}
}

// Thresholds of the low RH and high wind product.
type Thresholds struct {
	RH   float64
	Wind float64
}

// Unpacker converts datasets into field sets.
type Unpacker struct {
	clock      clockwork.Clock
	log        *logger.Logger
	location   *time.Location
	tolerance  time.Duration
	thresholds Thresholds
}

// Option configures an Unpacker.
type Option func(*Unpacker)

// WithClock replaces the wall clock used to find the latest cycle.
func WithClock(clock clockwork.Clock) Option {
	return func(u *Unpacker) { u.clock = clock }
}

// WithLocation sets the zone of the local valid time.
func WithLocation(loc *time.Location) Option {
	return func(u *Unpacker) {
		if loc != nil {
			u.location = loc
		}
	}
}

// WithPairTolerance sets the allowed drift of a 24-hour pair.
func WithPairTolerance(d time.Duration) Option {
	return func(u *Unpacker) { u.tolerance = d }
}

// WithThresholds sets the low RH and high wind thresholds.
func WithThresholds(t Thresholds) Option {
	return func(u *Unpacker) { u.thresholds = t }
}

// New returns an Unpacker.
func New(log *logger.Logger, opts ...Option) *Unpacker {
	u := &Unpacker{
		clock:      clockwork.NewRealClock(),
		log:        log,
		location:   time.Local,
		tolerance:  DefaultPairTolerance,
		thresholds: Thresholds{RH: DefaultCriticalRH, Wind: DefaultCriticalWind},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Unpack returns the field set of p. Fetch failures are returned as errs.ErrDataFetch and
// mismatched pairs as errs.ErrDataShape. No partial result is returned on error.
func (u *Unpacker) Unpack(ctx context.Context, p product.Product, src Source) (*weather.FieldSet, error) {
	current, err := u.current(ctx, p, src)
	if err != nil {
		return nil, err
	}
	primary, extra, err := u.derive(p, current)
	if err != nil {
		return nil, err
	}
	fs := &weather.FieldSet{
		Grid:      current.Grid,
		ValidTime: current.ValidTime.UTC(),
		LocalTime: current.ValidTime.In(u.location),
		Primary:   primary,
		Extra:     extra,
	}

	if p.Delta {
		prior, err := u.prior(ctx, p, src, current)
		if err != nil {
			return nil, err
		}
		if err = weather.ValidatePair(current, prior, u.tolerance); err != nil {
			return nil, err
		}
		before, _, err := u.derive(p, prior)
		if err != nil {
			return nil, err
		}
		delta, err := weather.Delta(primary, before)
		if err != nil {
			return nil, err
		}
		fs.Primary = delta
		fs.PriorTime = prior.ValidTime.UTC()
		fs.Extra = map[string]weather.Field{
			weather.ExtraCurrent: primary,
			weather.ExtraPrior:   before,
		}
	}

	if err = fs.Validate(); err != nil {
		return nil, err
	}
	u.log.Debug("unpacked fields", slog.String("product", p.Name), slog.Time("valid", fs.ValidTime),
		slog.Bool("delta", p.Delta))
	return fs, nil
}

func (u *Unpacker) current(ctx context.Context, p product.Product, src Source) (*weather.Dataset, error) {
	if src.Current != nil {
		if err := src.Current.Validate(); err != nil {
			return nil, err
		}
		return src.Current, nil
	}
	if src.Provider == nil {
		return nil, errs.Config("unpack "+p.Name, ErrNoSource)
	}
	now := u.clock.Now().UTC()
	ds, err := src.Provider.Latest(ctx, now, p.Variables, src.Bounds)
	if err != nil {
		return nil, classify("fetch latest analysis", err)
	}
	u.log.Debug("fetched analysis", slog.String("provider", src.Provider.Name()),
		slog.Time("valid", ds.ValidTime))
	return ds, nil
}

func (u *Unpacker) prior(ctx context.Context, p product.Product, src Source, current *weather.Dataset) (*weather.Dataset, error) {
	if src.Prior != nil {
		if err := src.Prior.Validate(); err != nil {
			return nil, err
		}
		return src.Prior, nil
	}
	if src.Provider == nil {
		return nil, errs.Config("unpack "+p.Name, fmt.Errorf("24-hour product needs a prior dataset: %w",
			ErrNoSource))
	}
	bounds := src.Bounds
	if src.Current != nil {
		bounds = current.Grid.Bounds()
	}
	ds, err := src.Provider.At(ctx, current.ValidTime.Add(-24*time.Hour), p.Variables, bounds)
	if err != nil {
		return nil, classify("fetch prior analysis", err)
	}
	return ds, nil
}

// classify keeps classified errors and marks everything else as a fetch failure.
func classify(op string, err error) error {
	if errs.KindOf(err) != nil {
		return err
	}
	return errs.Fetch(op, err)
}

// derive returns the primary field of p from ds in display units, plus overlay fields.
func (u *Unpacker) derive(p product.Product, ds *weather.Dataset) (weather.Field, map[string]weather.Field, error) {
	switch p.Quantity {
	case product.Temperature:
		f, err := temperature(ds, weather.VarTemperature, p.Units)
		return f, nil, err
	case product.DewPoint:
		f, err := temperature(ds, weather.VarDewPoint, p.Units)
		return f, nil, err
	case product.RelativeHumidity:
		f, err := relativeHumidity(ds)
		return f, nil, err
	case product.WindSpeed:
		f, err := windSpeed(ds, p.Units)
		return f, nil, err
	case product.Wind:
		speed, err := windSpeed(ds, p.Units)
		if err != nil {
			return weather.Field{}, nil, err
		}
		uc, err := speedField(ds, weather.VarWindU, p.Units)
		if err != nil {
			return weather.Field{}, nil, err
		}
		vc, err := speedField(ds, weather.VarWindV, p.Units)
		if err != nil {
			return weather.Field{}, nil, err
		}
		return speed, map[string]weather.Field{weather.ExtraWindU: uc, weather.ExtraWindV: vc}, nil
	case product.CloudCover:
		f, err := ds.Field(weather.VarCloudCover)
		if err != nil {
			return weather.Field{}, nil, err
		}
		return f.Map("cloud_cover", units.Percent, clampPercent), nil, nil
	case product.CriticalFire:
		return u.critical(ds)
	default:
		return weather.Field{}, nil, errs.Config("derive fields", fmt.Errorf("unsupported quantity %d", p.Quantity))
	}
}

// temperature converts a Kelvin field to target.
func temperature(ds *weather.Dataset, name, target string) (weather.Field, error) {
	conv, err := units.TemperatureConverter(target)
	if err != nil {
		return weather.Field{}, errs.Config("convert "+name, err)
	}
	f, err := ds.Field(name)
	if err != nil {
		return weather.Field{}, err
	}
	return f.Map(name, target, conv), nil
}

// speedField converts a field in meters per second to target.
func speedField(ds *weather.Dataset, name, target string) (weather.Field, error) {
	conv, err := units.SpeedConverter(target)
	if err != nil {
		return weather.Field{}, errs.Config("convert "+name, err)
	}
	f, err := ds.Field(name)
	if err != nil {
		return weather.Field{}, err
	}
	return f.Map(name, target, conv), nil
}

// windSpeed prefers the analysed speed and falls back to the vector magnitude.
func windSpeed(ds *weather.Dataset, target string) (weather.Field, error) {
	if _, ok := ds.Fields[weather.VarWindSpeed]; ok {
		return speedField(ds, weather.VarWindSpeed, target)
	}
	uc, err := speedField(ds, weather.VarWindU, target)
	if err != nil {
		return weather.Field{}, err
	}
	vc, err := speedField(ds, weather.VarWindV, target)
	if err != nil {
		return weather.Field{}, err
	}
	return uc.Combine(vc, weather.VarWindSpeed, target, math.Hypot)
}

// relativeHumidity derives RH in percent from temperature and dew point given in Kelvin.
func relativeHumidity(ds *weather.Dataset) (weather.Field, error) {
	temp, err := ds.Field(weather.VarTemperature)
	if err != nil {
		return weather.Field{}, err
	}
	dew, err := ds.Field(weather.VarDewPoint)
	if err != nil {
		return weather.Field{}, err
	}
	return temp.Combine(dew, "relative_humidity", units.Percent, func(t, d float64) float64 {
		return clampPercent(thermo.RelativeHumidity(units.KelvinToCelsius(t), units.KelvinToCelsius(d)))
	})
}

// critical marks cells where RH is at or below and wind at or above the thresholds.
func (u *Unpacker) critical(ds *weather.Dataset) (weather.Field, map[string]weather.Field, error) {
	rh, err := relativeHumidity(ds)
	if err != nil {
		return weather.Field{}, nil, err
	}
	speed, err := windSpeed(ds, units.MPH)
	if err != nil {
		return weather.Field{}, nil, err
	}
	th := u.thresholds
	mask, err := rh.Combine(speed, "low_rh_high_wind", "", func(h, w float64) float64 {
		switch {
		case math.IsNaN(h) || math.IsNaN(w):
			return math.NaN()
		case h <= th.RH && w >= th.Wind:
			return 1
		default:
			return 0
		}
	})
	if err != nil {
		return weather.Field{}, nil, err
	}
	return mask, map[string]weather.Field{
		weather.ExtraHumidity: rh,
		weather.ExtraSpeed:    speed,
	}, nil
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Min(100, math.Max(0, v))
}
