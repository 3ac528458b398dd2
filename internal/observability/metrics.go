package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	statusChanges   *prometheus.CounterVec
	events          *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_http_requests_total",
			Help: "HTTP requests handled, by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admissions_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_http_errors_total",
			Help: "HTTP error responses, by route, method and error code.",
		}, []string{"path", "method", "code"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_registrations_submitted_total",
			Help: "Registration submissions, by result.",
		}, []string{"result"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_notifications_total",
			Help: "Notifier calls, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_status_changes_total",
			Help: "Committed registration status writes, by target status.",
		}, []string{"status"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_lifecycle_events_total",
			Help: "Lifecycle events observed by the activity worker, by type.",
		}, []string{"type"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordSubmission counts one submission attempt by result.
func (m *Metrics) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

// RecordNotification counts one notifier outcome.
func (m *Metrics) RecordNotification(kind, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// RecordStatusChange counts one committed status write.
func (m *Metrics) RecordStatusChange(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

// RecordEvent counts one lifecycle event.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}

// Registry exposes the underlying registry for tests and scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
