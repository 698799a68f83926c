package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	GraphMutations   *prometheus.CounterVec
	AnalysisRuns     prometheus.Counter
	AnalysisDuration prometheus.Histogram
	LoopsDetected    *prometheus.CounterVec
	EventsPublished  *prometheus.CounterVec

	// Snapshot cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates a metrics collector with its own registry. Process
// and Go runtime collectors are registered alongside the application metrics.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GraphMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_mutations_total",
				Help:      "Total number of graph commands handled",
			},
			[]string{"command", "status"},
		),
		AnalysisRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_runs_total",
				Help:      "Total number of loop/leverage/option computations",
			},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Analysis pipeline duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		LoopsDetected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loops_detected_total",
				Help:      "Total number of feedback loops reported by analysis runs",
			},
			[]string{"type"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of domain events handed to the publisher",
			},
			[]string{"status"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_cache_hits_total",
				Help:      "Total number of analysis requests served from a stored snapshot",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_cache_misses_total",
				Help:      "Total number of analysis requests that required a recomputation",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.GraphMutations,
		c.AnalysisRuns,
		c.AnalysisDuration,
		c.LoopsDetected,
		c.EventsPublished,
		c.CacheHits,
		c.CacheMisses,
	)

	return c
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveMutation records one handled command.
func (c *Collector) ObserveMutation(command string, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.GraphMutations.WithLabelValues(command, status).Inc()
}

// ObserveAnalysis records one pipeline run and the loops it found.
func (c *Collector) ObserveAnalysis(duration time.Duration, reinforcing, balancing int) {
	if c == nil {
		return
	}
	c.AnalysisRuns.Inc()
	c.AnalysisDuration.Observe(duration.Seconds())
	c.LoopsDetected.WithLabelValues("reinforcing").Add(float64(reinforcing))
	c.LoopsDetected.WithLabelValues("balancing").Add(float64(balancing))
}

// ObserveEvents records a publish attempt of n events.
func (c *Collector) ObserveEvents(n int, err error) {
	if c == nil || n == 0 {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.EventsPublished.WithLabelValues(status).Add(float64(n))
}

// ObserveCache records a snapshot lookup.
func (c *Collector) ObserveCache(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.CacheHits.Inc()
		return
	}
	c.CacheMisses.Inc()
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
