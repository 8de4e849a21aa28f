// Package telemetry holds the Prometheus collectors exported on /metrics.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	failuresTotal   *prometheus.CounterVec
	rowsDropped     *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfbstats_http_requests_total",
				Help: "HTTP requests by route template and status code",
			},
			[]string{"route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cfbstats_http_request_duration_seconds",
				Help:    "HTTP request latency by route template",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfbstats_pipeline_failures_total",
				Help: "Pipeline failures by error kind",
			},
			[]string{"kind"},
		),
		rowsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfbstats_rows_dropped_total",
				Help: "Dataset rows dropped for missing or non-numeric values, by metric pair",
			},
			[]string{"pair"},
		),
	}
	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.failuresTotal,
		m.rowsDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Failure counts a pipeline error of the given kind.
func (m *Metrics) Failure(kind string) {
	m.failuresTotal.WithLabelValues(kind).Inc()
}

// RowsDropped adds n dropped rows for pair.
func (m *Metrics) RowsDropped(pair string, n int) {
	if n > 0 {
		m.rowsDropped.WithLabelValues(pair).Add(float64(n))
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
