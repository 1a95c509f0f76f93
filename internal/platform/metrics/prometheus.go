// Package metrics exposes journal lifecycle and HTTP metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricTransitionsTotal       = "acctflow_journal_transitions_total"
	MetricRejectionsTotal        = "acctflow_journal_rejections_total"
	MetricRequestDurationSeconds = "acctflow_http_request_duration_seconds"
	newEntryState                = "new"
)

// Recorder holds the service's collectors on a private registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Recorder struct {
	registry        *prometheus.Registry
	transitions     *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ portssvc.LifecycleRecorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them, along with the Go
// runtime and process collectors, on a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricTransitionsTotal,
			Help: "Journal entry status transitions.",
		}, []string{"from", "to"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRejectionsTotal,
			Help: "Journal entry operations refused by a lifecycle or validation rule.",
		}, []string{"operation", "reason"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		r.transitions,
		r.rejections,
		r.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Transition counts a status change. An empty from means the entry was just created.
func (r *Recorder) Transition(from, to domain.EntryStatus) {
	fromLabel := string(from)
	if fromLabel == "" {
		fromLabel = newEntryState
	}
	r.transitions.WithLabelValues(fromLabel, string(to)).Inc()
}

// Rejected counts an operation refused with the given reason label.
func (r *Recorder) Rejected(operation, reason string) {
	r.rejections.WithLabelValues(operation, reason).Inc()
}

// Middleware observes request latency labelled by the matched route template.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
