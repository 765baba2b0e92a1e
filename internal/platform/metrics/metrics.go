// Package metrics defines the Prometheus instruments for PSGC lookups.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeRetry   = "retry"
	OutcomeFailure = "failure"
)

// Metrics holds the instruments shared by the fetcher and the MCP server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	fetchAttempts   *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	toolCalls       *prometheus.CounterVec
	inflightFetches prometheus.Gauge
}

// New creates the instruments on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psgc_fetch_attempts_total",
			Help: "Upstream PSGC requests by outcome",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "psgc_fetch_duration_seconds",
			Help:    "Upstream PSGC request duration including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psgc_cache_lookups_total",
			Help: "Response cache lookups by result",
		}, []string{"result"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psgc_mcp_tool_calls_total",
			Help: "MCP tool invocations by tool and status",
		}, []string{"tool", "status"}),
		inflightFetches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "psgc_fetch_inflight",
			Help: "Upstream PSGC requests currently in flight",
		}),
	}
	m.registry.MustRegister(
		m.fetchAttempts,
		m.fetchDuration,
		m.cacheLookups,
		m.toolCalls,
		m.inflightFetches,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// FetchAttempt records one upstream attempt.
func (m *Metrics) FetchAttempt(outcome string) {
	if m == nil {
		return
	}
	m.fetchAttempts.WithLabelValues(outcome).Inc()
}

// FetchDuration records the total time spent on one fetch.
func (m *Metrics) FetchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}

// CacheLookup records a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ToolCall records one MCP tool invocation.
func (m *Metrics) ToolCall(tool string, failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
}

// InflightAdd moves the in-flight gauge by delta.
func (m *Metrics) InflightAdd(delta float64) {
	if m == nil {
		return
	}
	m.inflightFetches.Add(delta)
}
