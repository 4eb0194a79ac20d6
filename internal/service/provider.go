// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/http"
	"github.com/wneessen/wxmaps/internal/metrics"
	"github.com/wneessen/wxmaps/internal/weather"
	"github.com/wneessen/wxmaps/internal/weather/provider/nomads"
)

func (s *Service) selectWeatherProvider() (weather.Provider, error) {
	provider, err := nomads.New(http.New(s.logger), s.logger, nomads.Config{
		BaseURL:  s.config.Data.BaseURL,
		Lookback: int(*s.config.Data.LookbackHours), //nolint:gosec
		Timeout:  s.config.Data.Timeout,
		Stride:   int(*s.config.Data.Stride), //nolint:gosec
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create NOMADS weather provider: %w", err)
	}
	return provider, nil
}

// instrumentedProvider records fetch metrics around a provider.
type instrumentedProvider struct {
	weather.Provider
	metrics *metrics.Metrics
}

func instrument(p weather.Provider, m *metrics.Metrics) weather.Provider {
	if _, ok := p.(*instrumentedProvider); ok {
		return p
	}
	return &instrumentedProvider{Provider: p, metrics: m}
}

func (p *instrumentedProvider) Latest(ctx context.Context, now time.Time, vars []string,
	bounds geo.Bounds,
) (*weather.Dataset, error) {
	start := time.Now()
	ds, err := p.Provider.Latest(ctx, now, vars, bounds)
	p.metrics.ObserveFetch(start, err)
	return ds, err
}

func (p *instrumentedProvider) At(ctx context.Context, valid time.Time, vars []string,
	bounds geo.Bounds,
) (*weather.Dataset, error) {
	start := time.Now()
	ds, err := p.Provider.At(ctx, valid, vars, bounds)
	p.metrics.ObserveFetch(start, err)
	return ds, err
}
