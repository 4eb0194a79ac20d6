// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service runs the configured plots: plan, unpack, render and write, once or on a schedule.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vorlif/spreak"

	"github.com/wneessen/wxmaps/internal/config"
	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/i18n"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/metrics"
	"github.com/wneessen/wxmaps/internal/output"
	"github.com/wneessen/wxmaps/internal/plan"
	"github.com/wneessen/wxmaps/internal/product"
	"github.com/wneessen/wxmaps/internal/refsys"
	"github.com/wneessen/wxmaps/internal/region"
	"github.com/wneessen/wxmaps/internal/render"
	"github.com/wneessen/wxmaps/internal/shapes"
	"github.com/wneessen/wxmaps/internal/template"
	"github.com/wneessen/wxmaps/internal/unpack"
	"github.com/wneessen/wxmaps/internal/vartype"
	"github.com/wneessen/wxmaps/internal/weather"
	"github.com/wneessen/wxmaps/internal/weather/cache"
)

const renderJobName = "render_maps_job"

type Service struct {
	SignalSrc signalSource

	config    *config.Config
	logger    *logger.Logger
	localizer *spreak.Localizer
	clock     clockwork.Clock
	metrics   *metrics.Metrics
	provider  weather.Provider
	scheduler gocron.Scheduler
	shapes    *shapes.Loader
	templates *template.Templates
	unpacker  *unpack.Unpacker
	writer    *output.Writer
}

// Option configures a Service.
type Option func(*Service)

// WithProvider replaces the NOMADS provider.
func WithProvider(p weather.Provider) Option {
	return func(s *Service) { s.provider = p }
}

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithMetrics replaces the metrics registered with the default registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(conf *config.Config, log *logger.Logger, loc *spreak.Localizer, opts ...Option) (*Service, error) {
	service := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		localizer: loc,
		clock:     clockwork.NewRealClock(),
		shapes:    shapes.NewLoader(conf.ShapePaths(), log),
		writer:    output.New(conf.Output.Directory, *conf.Output.Frames, conf.Output.FrameDelay, log),
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.metrics == nil {
		service.metrics = metrics.NewMetrics()
	}

	tpls, err := template.New(conf, loc, i18n.Tag(conf.Locale))
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	service.templates = tpls

	if service.provider == nil {
		if service.provider, err = service.selectWeatherProvider(); err != nil {
			return nil, fmt.Errorf("failed to create weather provider: %w", err)
		}
	}
	service.provider = cache.New(instrument(service.provider, service.metrics), *conf.Data.CacheTTL,
		*conf.Data.FixedCacheTTL, service.clock)

	service.unpacker = unpack.New(log,
		unpack.WithClock(service.clock),
		unpack.WithLocation(conf.Location()),
		unpack.WithPairTolerance(conf.Data.PairTolerance),
		unpack.WithThresholds(unpack.Thresholds{RH: *conf.Style.RHThreshold, Wind: *conf.Style.WindThreshold}),
	)

	scheduler, err := gocron.NewScheduler(gocron.WithClock(service.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	service.scheduler = scheduler

	return service, nil
}

// Run renders all plots now and then on every schedule interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if len(s.config.Plots) == 0 {
		return errs.Config("run service", config.ErrNoPlots)
	}
	if err := s.createScheduledJob(ctx, s.config.Schedule.Interval, s.renderScheduled, renderJobName); err != nil {
		return err
	}
	s.scheduler.Start()

	if addr := s.config.Schedule.MetricsAddr; addr != "" {
		srv := newMetricsServer(addr, s.metrics, s.logger)
		go func() {
			if err := srv.Start(); err != nil {
				s.logger.Error("metrics server failed", logger.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("failed to shut down metrics server", logger.Err(err))
			}
		}()
	}

	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

func (s *Service) renderScheduled(ctx context.Context) {
	if _, err := s.RenderAll(ctx); err != nil {
		s.logger.Error("scheduled render finished with errors", logger.Err(err))
	}
}

// RenderAll renders every configured plot from the latest analysis. A failing plot does not stop the
// others; the returned error joins all failures.
func (s *Service) RenderAll(ctx context.Context) ([]string, error) {
	return s.renderPlots(ctx, func(prof region.Profile) unpack.Source {
		return unpack.FromProvider(s.provider, prof.Bounds)
	})
}

// RenderDataset renders every configured plot from caller-supplied datasets. prior may be nil when
// no 24-hour product is configured.
func (s *Service) RenderDataset(ctx context.Context, current, prior *weather.Dataset) ([]string, error) {
	if current == nil {
		return nil, errs.Config("render dataset", unpack.ErrNoSource)
	}
	return s.renderPlots(ctx, func(region.Profile) unpack.Source {
		return unpack.FromDatasets(current, prior)
	})
}

func (s *Service) renderPlots(ctx context.Context, source func(region.Profile) unpack.Source) ([]string, error) {
	log := s.logger.WithRun(uuid.NewString())
	var (
		paths    []string
		failures []error
	)
	for i, p := range s.config.Plots {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}
		path, err := s.renderPlot(ctx, log, p, source)
		if err != nil {
			log.Error("failed to render plot", logger.Err(err), slog.Int("plot", i+1),
				slog.String("product", p.Product))
			failures = append(failures, fmt.Errorf("plot %d (%s): %w", i+1, p.Product, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(failures...)
}

// renderPlot runs one plot through the pipeline and returns the path of the written still.
func (s *Service) renderPlot(ctx context.Context, log *logger.Logger, p config.Plot,
	source func(region.Profile) unpack.Source,
) (path string, err error) {
	start := s.clock.Now()
	defer func() {
		s.metrics.ObserveRender(p.Product, start, err)
	}()

	prod, err := product.Lookup(p.Product)
	if err != nil {
		return "", err
	}
	if p.ReferenceSystem != "" && !refsys.Known(p.ReferenceSystem) {
		log.Warn("unknown reference system, drawing no boundaries",
			slog.String("reference_system", p.ReferenceSystem))
	}
	rp, err := s.plan(p, prod)
	if err != nil {
		return "", err
	}
	fs, err := s.unpacker.Unpack(ctx, prod, source(rp.Region))
	if err != nil {
		return "", err
	}
	layers, err := s.shapes.Layers(rp.Bounds, rp.Boundaries.Active(), features(rp.Features))
	if err != nil {
		return "", err
	}

	text, err := s.templates.Render(s.templateData(rp, prod, fs))
	if err != nil {
		return "", errs.Config("render templates", err)
	}
	img, err := render.Render(rp, fs, layers, render.Options{
		Product: prod,
		Text: render.Text{
			LeftTitle:     text.Title,
			LeftSubtitle:  text.Subtitle,
			RightTitle:    text.ValidTime,
			RightSubtitle: text.Comparison,
			ColorbarLabel: s.colorbarLabel(prod),
			Signature:     text.Signature,
		},
		Wind: windStyle(s.config.Style.WindStyle),
	})
	if err != nil {
		return "", err
	}

	key := output.Key{
		Region:          rp.Region.Key(),
		ReferenceSystem: rp.ReferenceSystem,
		Product:         prod.Name,
		FileName:        text.FileName,
	}
	if path, err = s.writer.Write(img, key, fs.ValidTime); err != nil {
		return "", err
	}
	s.metrics.Written(prod.Name, key.Region, fs.ValidTime)
	log.Info("map rendered", slog.String("product", prod.Name), slog.String("region", rp.Region.Name),
		slog.String("reference_system", rp.ReferenceSystem), slog.Time("valid_time", fs.ValidTime),
		slog.String("path", path))
	return path, nil
}

// plan builds the rendering plan of a configured plot.
func (s *Service) plan(p config.Plot, prod product.Product) (*plan.RenderingPlan, error) {
	sel, err := p.Selector()
	if err != nil {
		return nil, err
	}
	custom, err := p.CustomFlags()
	if err != nil {
		return nil, errs.Config("resolve plot", err)
	}

	opts := plan.Options{
		Region: sel,
		Layout: region.LayoutOverrides{
			Width:  positive(p.Width),
			Height: positive(p.Height),
			DPI:    positive(p.DPI),
		},
		ReferenceSystem: p.ReferenceSystem,
		Custom:          custom,
		Samples: plan.SamplePointStyle{
			Box: vartype.Of(s.config.Style.SampleBox),
		},
		ShowSamples: prod.Samples,
		Alpha:       vartype.Of(*s.config.Style.Alpha),
	}
	switch p.Samples {
	case config.SamplesOn:
		opts.Samples.Show = vartype.Of(true)
	case config.SamplesOff:
		opts.Samples.Show = vartype.Of(false)
	}
	if p.SampleStride > 0 {
		opts.Samples.Stride = vartype.Of(p.SampleStride)
	}
	if s.config.Style.SampleColor != "" {
		opts.Samples.Color = vartype.Of(s.config.Style.SampleColor)
	}

	rp, err := plan.New(opts)
	if err != nil {
		return nil, err
	}
	scaleFonts(rp, *s.config.Style.FontScale)
	return rp, nil
}

func (s *Service) templateData(rp *plan.RenderingPlan, prod product.Product, fs *weather.FieldSet) template.Data {
	data := template.Data{
		Product:         prod.Title,
		ProductName:     prod.Name,
		Units:           prod.Units,
		Region:          rp.Region.Name,
		RegionCode:      rp.Region.Key(),
		ReferenceSystem: rp.ReferenceSystem,
		Source:          s.provider.Name(),
		ValidTime:       fs.ValidTime,
		LocalTime:       fs.LocalTime,
		Delta:           fs.IsDelta(),
		Now:             s.clock.Now(),
	}
	if fs.IsDelta() {
		data.PriorTime = fs.PriorTime
		data.PriorLocalTime = fs.PriorTime.In(s.config.Location())
	}
	return data
}

func (s *Service) colorbarLabel(prod product.Product) string {
	if prod.Quantity == product.CriticalFire {
		return s.localizer.Get("Critical fire weather")
	}
	if prod.Delta {
		return "Δ " + prod.Units
	}
	return prod.Units
}

// scaleFonts multiplies all type sizes of the plan.
func scaleFonts(rp *plan.RenderingPlan, scale float64) {
	if scale <= 0 || scale == 1 {
		return
	}
	l := &rp.Layout
	for _, size := range []*float64{
		&l.TitleSize, &l.SubtitleSize, &l.SignatureSize, &l.SampleSize, &l.ColorbarSize, &l.TickSize,
		&rp.Samples.FontSize,
	} {
		*size *= scale
	}
}

func features(f plan.Features) []shapes.Feature {
	var list []shapes.Feature
	for _, feat := range []struct {
		on      bool
		feature shapes.Feature
	}{
		{f.Land, shapes.Land},
		{f.Lakes, shapes.Lakes},
		{f.Rivers, shapes.Rivers},
		{f.Coastline, shapes.Coastline},
	} {
		if feat.on {
			list = append(list, feat.feature)
		}
	}
	return list
}

func windStyle(name string) render.WindStyle {
	if name == config.WindVectors {
		return render.Vectors
	}
	return render.Barbs
}

func positive(v float64) vartype.Float {
	if v > 0 {
		return vartype.Of(v)
	}
	return vartype.Float{}
}
