// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/product"
	"github.com/wneessen/wxmaps/internal/refsys"
	"github.com/wneessen/wxmaps/internal/region"
	"github.com/wneessen/wxmaps/internal/shapes"
)

const (
	configEnv = "WXMAPS"

	DefaultTitleTpl      = `{{loc .Product}}`
	DefaultSubtitleTpl   = `{{.Region}}`
	DefaultValidTimeTpl  = `{{loc "Valid"}}: {{timeFormat .LocalTime "01/02/2006 15:04 MST"}}`
	DefaultComparisonTpl = `{{if .Delta}}{{loc "Compared to"}}: {{timeFormat .PriorLocalTime "01/02/2006 15:04 MST"}}{{end}}`
	DefaultSignatureTpl  = `{{loc "Plot created with wxmaps"}} | {{loc "Data source"}}: NOAA/NCEP/NOMADS`
	DefaultFileNameTpl   = `{{uc .RegionCode}}_{{.ProductName}}_{{timeFormat .ValidTime "2006010215"}}`
)

// Defaults of settings where an explicit zero is meaningful or must be rejected. fig replaces zero
// values with tag defaults, so these are applied in Validate to unset fields only.
const (
	DefaultLookbackHours uint = 4
	DefaultStride        uint = 1
	DefaultCacheTTL           = 10 * time.Minute
	DefaultFixedCacheTTL      = 6 * time.Hour
	DefaultFrames             = 12
	DefaultAlpha              = 1.0
	DefaultFontScale          = 1.0
	DefaultRHThreshold        = 15.0
	DefaultWindThreshold      = 25.0
)

// Wind styles.
const (
	WindBarbs   = "barbs"
	WindVectors = "vectors"
)

// Sample point modes of a plot. The product default applies when unset.
const (
	SamplesDefault = ""
	SamplesOn      = "on"
	SamplesOff     = "off"
)

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Locale   string     `fig:"locale"`
	// Timezone is the display zone of valid times in titles.
	Timezone string `fig:"timezone" default:"UTC"`

	Data struct {
		BaseURL       string        `fig:"base_url" default:"https://nomads.ncep.noaa.gov/dods/rtma2p5"`
		LookbackHours *uint         `fig:"lookback_hours"`
		Timeout       time.Duration `fig:"timeout" default:"2m"`
		PairTolerance time.Duration `fig:"pair_tolerance" default:"30m"`
		// Stride requests every n-th native grid point.
		Stride *uint `fig:"stride"`
		// CacheTTL keeps the newest analysis for plots sharing a region. Zero disables the cache.
		CacheTTL *time.Duration `fig:"cache_ttl"`
		// FixedCacheTTL applies to analyses requested for a fixed valid time, such as 24h comparands.
		FixedCacheTTL *time.Duration `fig:"fixed_cache_ttl"`
	} `fig:"data"`

	Output struct {
		Directory  string        `fig:"directory" default:"maps"`
		Frames     *int          `fig:"frames"`
		FrameDelay time.Duration `fig:"frame_delay" default:"500ms"`
	} `fig:"output"`

	Shapefiles struct {
		GACC            string `fig:"gacc"`
		PSA             string `fig:"psa"`
		County          string `fig:"county"`
		State           string `fig:"state"`
		CWA             string `fig:"cwa"`
		FireWeatherZone string `fig:"fire_weather_zone"`
		PublicZone      string `fig:"public_zone"`
		Ocean           string `fig:"ocean"`
		Land            string `fig:"land"`
		Coastline       string `fig:"coastline"`
		Lakes           string `fig:"lakes"`
		Rivers          string `fig:"rivers"`
	} `fig:"shapefiles"`

	Style struct {
		Alpha         *float64 `fig:"alpha"`
		FontScale     *float64 `fig:"font_scale"`
		WindStyle     string   `fig:"wind_style" default:"barbs"`
		SampleColor   string   `fig:"sample_color"`
		SampleBox     bool     `fig:"sample_box"`
		RHThreshold   *float64 `fig:"rh_threshold"`
		WindThreshold *float64 `fig:"wind_threshold"`
	} `fig:"style"`

	Templates struct {
		Title      string `fig:"title"`
		Subtitle   string `fig:"subtitle"`
		ValidTime  string `fig:"valid_time"`
		Comparison string `fig:"comparison"`
		Signature  string `fig:"signature"`
		FileName   string `fig:"file_name"`
	} `fig:"templates"`

	Schedule struct {
		Interval    time.Duration `fig:"interval" default:"1h"`
		MetricsAddr string        `fig:"metrics_addr"`
	} `fig:"schedule"`

	Plots []Plot `fig:"plots"`
}

// Plot is one configured map.
type Plot struct {
	Product string `fig:"product"`
	// Exactly one of State, GACC and Bounds is set. Bounds is west, east, south, north.
	State           string    `fig:"state"`
	GACC            string    `fig:"gacc"`
	Bounds          []float64 `fig:"bounds"`
	Label           string    `fig:"label"`
	ReferenceSystem string    `fig:"reference_system"`
	// CustomLayers are the layers drawn with the Custom reference system.
	CustomLayers []string `fig:"custom_layers"`
	Samples      string   `fig:"samples"`
	SampleStride int      `fig:"sample_stride"`
	Width        float64  `fig:"width"`
	Height       float64  `fig:"height"`
	DPI          float64  `fig:"dpi"`
}

var ErrNoPlots = errors.New("no plots configured")

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, errs.Config("read config", fmt.Errorf("failed to read config: %w", err))
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, errs.Config("load config", fmt.Errorf("failed to load config: %w", err))
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, errs.Config("load config", fmt.Errorf("failed to load config: %w", err))
	}

	return conf, conf.Validate()
}

// Validate checks all values and fills in derived defaults.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errs.Config("validate config", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	c.applyDefaults()

	if c.Data.BaseURL == "" {
		return errors.New("data base URL must not be empty")
	}
	if *c.Data.LookbackHours < 1 || *c.Data.LookbackHours > 48 {
		return fmt.Errorf("invalid lookback hours: %d", *c.Data.LookbackHours)
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("invalid data timeout: %s", c.Data.Timeout)
	}
	if c.Data.PairTolerance < 0 || c.Data.PairTolerance >= 12*time.Hour {
		return fmt.Errorf("invalid pair tolerance: %s", c.Data.PairTolerance)
	}
	if *c.Data.CacheTTL < 0 || *c.Data.FixedCacheTTL < 0 {
		return fmt.Errorf("invalid cache TTL: %s/%s", *c.Data.CacheTTL, *c.Data.FixedCacheTTL)
	}
	if *c.Data.Stride < 1 {
		return fmt.Errorf("invalid data stride: %d", *c.Data.Stride)
	}

	if c.Output.Directory == "" {
		return errors.New("output directory must not be empty")
	}
	if *c.Output.Frames < 1 {
		return fmt.Errorf("invalid frame count: %d", *c.Output.Frames)
	}
	if c.Output.FrameDelay < 10*time.Millisecond {
		return fmt.Errorf("invalid frame delay: %s", c.Output.FrameDelay)
	}

	if *c.Style.Alpha < 0 || *c.Style.Alpha > 1 {
		return fmt.Errorf("invalid alpha: %.2f", *c.Style.Alpha)
	}
	if *c.Style.FontScale <= 0 {
		return fmt.Errorf("invalid font scale: %.2f", *c.Style.FontScale)
	}
	c.Style.WindStyle = strings.ToLower(c.Style.WindStyle)
	if c.Style.WindStyle != WindBarbs && c.Style.WindStyle != WindVectors {
		return fmt.Errorf("invalid wind style: %s", c.Style.WindStyle)
	}
	if *c.Style.RHThreshold <= 0 || *c.Style.RHThreshold > 100 {
		return fmt.Errorf("invalid relative humidity threshold: %.1f", *c.Style.RHThreshold)
	}
	if *c.Style.WindThreshold <= 0 {
		return fmt.Errorf("invalid wind threshold: %.1f", *c.Style.WindThreshold)
	}

	c.defaultTemplates()

	if c.Schedule.Interval < time.Minute {
		return fmt.Errorf("invalid schedule interval: %s", c.Schedule.Interval)
	}

	for i := range c.Plots {
		if err := c.Plots[i].validate(); err != nil {
			return fmt.Errorf("plot %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Data.LookbackHours, DefaultLookbackHours)
	setDefault(&c.Data.Stride, DefaultStride)
	setDefault(&c.Data.CacheTTL, DefaultCacheTTL)
	setDefault(&c.Data.FixedCacheTTL, DefaultFixedCacheTTL)
	setDefault(&c.Output.Frames, DefaultFrames)
	setDefault(&c.Style.Alpha, DefaultAlpha)
	setDefault(&c.Style.FontScale, DefaultFontScale)
	setDefault(&c.Style.RHThreshold, DefaultRHThreshold)
	setDefault(&c.Style.WindThreshold, DefaultWindThreshold)
}

func setDefault[T any](v **T, def T) {
	if *v == nil {
		*v = &def
	}
}

func (c *Config) defaultTemplates() {
	set := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	set(&c.Templates.Title, DefaultTitleTpl)
	set(&c.Templates.Subtitle, DefaultSubtitleTpl)
	set(&c.Templates.ValidTime, DefaultValidTimeTpl)
	set(&c.Templates.Comparison, DefaultComparisonTpl)
	set(&c.Templates.Signature, DefaultSignatureTpl)
	set(&c.Templates.FileName, DefaultFileNameTpl)
}

// Location returns the display time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ShapePaths returns the configured shapefiles. Unset entries are left out.
func (c *Config) ShapePaths() shapes.Paths {
	paths := shapes.Paths{
		Boundaries: make(map[refsys.Layer]string),
		Features:   make(map[shapes.Feature]string),
	}
	sf := c.Shapefiles
	for layer, path := range map[refsys.Layer]string{
		refsys.GACC: sf.GACC, refsys.PSA: sf.PSA, refsys.County: sf.County, refsys.State: sf.State,
		refsys.CWA: sf.CWA, refsys.FireWeatherZone: sf.FireWeatherZone, refsys.PublicZone: sf.PublicZone,
	} {
		if path != "" {
			paths.Boundaries[layer] = path
		}
	}
	for feature, path := range map[shapes.Feature]string{
		shapes.Ocean: sf.Ocean, shapes.Land: sf.Land, shapes.Coastline: sf.Coastline,
		shapes.Lakes: sf.Lakes, shapes.Rivers: sf.Rivers,
	} {
		if path != "" {
			paths.Features[feature] = path
		}
	}
	return paths
}

func (p *Plot) validate() error {
	p.Product = strings.ToLower(strings.TrimSpace(p.Product))
	if _, err := product.Lookup(p.Product); err != nil {
		return err
	}
	if _, err := p.Selector(); err != nil {
		return err
	}
	if _, err := p.CustomFlags(); err != nil {
		return err
	}
	p.Samples = strings.ToLower(p.Samples)
	switch p.Samples {
	case SamplesDefault, SamplesOn, SamplesOff:
	default:
		return fmt.Errorf("invalid samples mode %q", p.Samples)
	}
	if p.SampleStride < 0 {
		return fmt.Errorf("invalid sample stride: %d", p.SampleStride)
	}
	if p.Width < 0 || p.Height < 0 || p.DPI < 0 {
		return errors.New("figure size and dpi must not be negative")
	}
	return nil
}

// Selector returns the region selector of the plot.
func (p Plot) Selector() (region.Selector, error) {
	var bounds *geo.Bounds
	if len(p.Bounds) > 0 {
		if len(p.Bounds) != 4 {
			return region.Selector{}, fmt.Errorf("bounds need west, east, south and north, got %d values",
				len(p.Bounds))
		}
		bounds = &geo.Bounds{West: p.Bounds[0], East: p.Bounds[1], South: p.Bounds[2], North: p.Bounds[3]}
	}
	sel, err := region.NewSelector(p.State, p.GACC, bounds)
	if err != nil {
		return sel, err
	}
	if p.Label != "" {
		sel = sel.WithLabel(p.Label)
	}
	return sel, nil
}

// CustomFlags returns the layers of the Custom reference system.
func (p Plot) CustomFlags() (refsys.Flags, error) {
	var flags refsys.Flags
	for _, name := range p.CustomLayers {
		layer, ok := refsys.ParseLayer(name)
		if !ok {
			return flags, fmt.Errorf("unknown boundary layer %q", name)
		}
		flags = flags.With(layer)
	}
	return flags, nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
