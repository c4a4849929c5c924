// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the Prometheus collectors of an App. A nil *Metrics
// records nothing.
type Metrics struct {
	Loads              *prometheus.CounterVec
	ProjectionWarnings prometheus.Counter
	Renders            *prometheus.CounterVec
	Broadcasts         prometheus.Counter
	ChartCacheHits     prometheus.Counter
	ChartCacheMisses   prometheus.Counter
	Connections        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "benchview_loads_total",
			Help: "Results document loads, by result.",
		}, []string{"result"}),
		ProjectionWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchview_projection_warnings_total",
			Help: "Non-finite cells produced while projecting datasets.",
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "benchview_renders_total",
			Help: "Visualizations drawn, by result.",
		}, []string{"result"}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchview_selection_broadcasts_total",
			Help: "Selections relayed between visualizations.",
		}),
		ChartCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchview_chart_cache_hits_total",
			Help: "Chart images served from cache.",
		}),
		ChartCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "benchview_chart_cache_misses_total",
			Help: "Chart images rendered.",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "benchview_websocket_connections",
			Help: "Open websocket connections.",
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.Loads,
		m.ProjectionWarnings,
		m.Renders,
		m.Broadcasts,
		m.ChartCacheHits,
		m.ChartCacheMisses,
		m.Connections,
	)
	return m
}

// Handler serves the metrics of m.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func (m *Metrics) load(ok bool) {
	if m != nil {
		m.Loads.WithLabelValues(result(ok)).Inc()
	}
}

func (m *Metrics) warning() {
	if m != nil {
		m.ProjectionWarnings.Inc()
	}
}

func (m *Metrics) render(ok bool) {
	if m != nil {
		m.Renders.WithLabelValues(result(ok)).Inc()
	}
}

func (m *Metrics) broadcast(n int) {
	if m != nil && n > 0 {
		m.Broadcasts.Inc()
	}
}

func (m *Metrics) cacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.ChartCacheHits.Inc()
	} else {
		m.ChartCacheMisses.Inc()
	}
}

func (m *Metrics) connected(delta float64) {
	if m != nil {
		m.Connections.Add(delta)
	}
}
