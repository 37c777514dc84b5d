// Package metrics exposes Prometheus instrumentation for the market feed and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tick triggers.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// Metrics holds the collectors registered on a private registry, so several instances
// can coexist in tests. A nil *Metrics discards every observation.
type Metrics struct {
	registry *prometheus.Registry

	ticks          *prometheus.CounterVec
	tickDuration   prometheus.Histogram
	tickErrors     prometheus.Counter
	coalesced      prometheus.Counter
	skipped        prometheus.Counter
	portfolioValue prometheus.Gauge
	streamClients  prometheus.Gauge
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates the collectors under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ticks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_ticks_total",
				Help:      "Completed market data ticks by trigger",
			},
			[]string{"trigger"},
		),
		tickDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "feed_tick_duration_seconds",
				Help:      "Duration of a market data tick including simulated latency",
				Buckets:   []float64{.001, .01, .1, .25, .5, .75, 1, 2.5},
			},
		),
		tickErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_tick_errors_total",
				Help:      "Ticks that were cancelled before completing",
			},
		),
		coalesced: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_refresh_coalesced_total",
				Help:      "Refresh requests that joined a tick already in flight",
			},
		),
		skipped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_ticks_skipped_total",
				Help:      "Scheduled ticks skipped because the previous tick was still running",
			},
		),
		portfolioValue: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "portfolio_total_value",
				Help:      "Total value of the simulated portfolio",
			},
		),
		streamClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stream_clients",
				Help:      "Connected websocket stream clients",
			},
		),
		requestCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// ObserveTick records a completed tick.
func (m *Metrics) ObserveTick(trigger string, duration time.Duration, totalValue float64) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(trigger).Inc()
	m.tickDuration.Observe(duration.Seconds())
	m.portfolioValue.Set(totalValue)
}

// ObserveTickError records a tick that did not complete.
func (m *Metrics) ObserveTickError() {
	if m == nil {
		return
	}
	m.tickErrors.Inc()
}

// ObserveCoalesced records a refresh that shared the result of an in-flight tick.
func (m *Metrics) ObserveCoalesced() {
	if m == nil {
		return
	}
	m.coalesced.Inc()
}

// ObserveSkipped records a scheduled tick dropped by the scheduler.
func (m *Metrics) ObserveSkipped() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}

// SetStreamClients records the number of connected stream clients.
func (m *Metrics) SetStreamClients(n int) {
	if m == nil {
		return
	}
	m.streamClients.Set(float64(n))
}

// ObserveRequest records an HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
