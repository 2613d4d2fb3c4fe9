package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for backend calls.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector holds the Prometheus metrics of the front server.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec

	// Backend API metrics
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// Tab runtime metrics
	ActiveTabs     prometheus.Gauge
	StaleResponses prometheus.Counter
}

// NewCollector creates a collector with its own registry under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	backendRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of calls to the article backend",
		},
		[]string{"operation", "outcome"},
	)

	backendDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Article backend call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	activeTabs := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tabs",
			Help:      "Number of connected browser tabs",
		},
	)

	staleResponses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_discarded_total",
			Help:      "Listing responses dropped because the filter or page moved on",
		},
	)

	registry.MustRegister(httpRequests, backendRequests, backendDuration, activeTabs, staleResponses)

	return &Collector{
		registry:        registry,
		HTTPRequests:    httpRequests,
		BackendRequests: backendRequests,
		BackendDuration: backendDuration,
		ActiveTabs:      activeTabs,
		StaleResponses:  staleResponses,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveBackend records one backend call.
func (c *Collector) ObserveBackend(operation string, err error, took time.Duration) {
	if c == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.BackendRequests.WithLabelValues(operation, outcome).Inc()
	c.BackendDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route, status string) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
}

func (c *Collector) TabOpened() {
	if c == nil {
		return
	}
	c.ActiveTabs.Inc()
}

func (c *Collector) TabClosed() {
	if c == nil {
		return
	}
	c.ActiveTabs.Dec()
}

func (c *Collector) StaleDiscarded() {
	if c == nil {
		return
	}
	c.StaleResponses.Inc()
}
