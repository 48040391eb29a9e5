// Package metrics exposes Prometheus instrumentation for the registry.
// The collector uses a private registry so test binaries can construct as
// many collectors as they like without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the registry records.
type Collector struct {
	reg *prometheus.Registry

	// RequestsTotal counts HTTP requests by method and response class.
	RequestsTotal *prometheus.CounterVec

	// OperationFailures counts registry operations rejected by an
	// authorization, existence, or invariant check, by error kind.
	OperationFailures *prometheus.CounterVec

	// RequestDuration observes end-to-end request latency.
	RequestDuration prometheus.Histogram
}

// NewCollector constructs a Collector with all metrics registered on a
// fresh private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_requests_total",
			Help: "HTTP requests handled, by method and status class.",
		}, []string{"method", "class"}),
		OperationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_operation_failures_total",
			Help: "Registry operations rejected by a check, by error kind.",
		}, []string{"kind"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_request_duration_seconds",
			Help:    "End-to-end HTTP request duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.RequestsTotal, c.OperationFailures, c.RequestDuration)
	return c
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
