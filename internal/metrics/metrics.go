// Package metrics exposes prometheus counters describing download sessions.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yt_archiver"

// Attempt results
const (
	AttemptSuccess       = "success"
	AttemptDownloadError = "download_error"
	AttemptFatal         = "fatal"
)

// Collector groups the application counters under a private registry
type Collector struct {
	registry       *prometheus.Registry
	sessions       *prometheus.CounterVec
	attempts       *prometheus.CounterVec
	items          *prometheus.CounterVec
	progressFaults prometheus.Counter
}

// New creates a collector with its own registry
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Download sessions by final result.",
		}, []string{"result"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "format_attempts_total",
			Help:      "Engine invocations per format query by result.",
		}, []string{"result"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Items reported by the engine by status.",
		}, []string{"status"}),
		progressFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_faults_total",
			Help:      "Progress events that could not be applied.",
		}),
	}

	c.registry.MustRegister(c.sessions, c.attempts, c.items, c.progressFaults)
	return c
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the prometheus text format
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SessionFinished counts a finished session
func (c *Collector) SessionFinished(result string) {
	if c == nil {
		return
	}
	c.sessions.WithLabelValues(result).Inc()
}

// FormatAttempt counts one engine invocation
func (c *Collector) FormatAttempt(result string) {
	if c == nil {
		return
	}
	c.attempts.WithLabelValues(result).Inc()
}

// Item counts an item by status
func (c *Collector) Item(status string) {
	if c == nil {
		return
	}
	c.items.WithLabelValues(status).Inc()
}

// ProgressFault counts a progress event that could not be applied
func (c *Collector) ProgressFault() {
	if c == nil {
		return
	}
	c.progressFaults.Inc()
}
