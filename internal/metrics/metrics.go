// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus instruments of the map pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wxmaps"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the counters, histograms and gauges of the render pipeline.
type Metrics struct {
	Renders        *prometheus.CounterVec   // labels: product, outcome={success,error}
	RenderDuration *prometheus.HistogramVec // labels: product
	Fetches        *prometheus.CounterVec   // labels: outcome={success,error}
	FetchDuration  prometheus.Histogram
	FramesWritten  prometheus.Counter
	LastValidTime  *prometheus.GaugeVec // labels: product, region

	registry prometheus.Gatherer
}

// NewMetrics creates the metrics and registers them with the default Prometheus registry.
func NewMetrics() *Metrics {
	return New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsForTesting creates metrics on a fresh registry so tests can create them repeatedly.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	return New(reg, reg)
}

// New creates the metrics and registers them with reg. gather is used by Gather.
func New(reg prometheus.Registerer, gather prometheus.Gatherer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Map renders by product and outcome.",
		}, []string{"product", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete unpack, render and write cycle.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"product"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Analysis data fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of analysis data fetches.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		FramesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_written_total",
			Help:      "Map stills written to disk.",
		}),
		LastValidTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_valid_time_seconds",
			Help:      "Valid time of the newest map per product and region, as a Unix timestamp.",
		}, []string{"product", "region"}),
		registry: gather,
	}

	reg.MustRegister(
		m.Renders,
		m.RenderDuration,
		m.Fetches,
		m.FetchDuration,
		m.FramesWritten,
		m.LastValidTime,
	)
	return m
}

// ObserveRender records the outcome and duration of a render that started at start.
func (m *Metrics) ObserveRender(product string, start time.Time, err error) {
	m.Renders.WithLabelValues(product, outcome(err)).Inc()
	m.RenderDuration.WithLabelValues(product).Observe(time.Since(start).Seconds())
}

// ObserveFetch records the outcome and duration of a data fetch that started at start.
func (m *Metrics) ObserveFetch(start time.Time, err error) {
	m.Fetches.WithLabelValues(outcome(err)).Inc()
	m.FetchDuration.Observe(time.Since(start).Seconds())
}

// Written records a written still of the given product and region.
func (m *Metrics) Written(product, region string, valid time.Time) {
	m.FramesWritten.Inc()
	m.LastValidTime.WithLabelValues(product, region).Set(float64(valid.Unix()))
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
