// Package metrics exposes Prometheus collectors for the HTTP API, payroll
// runs and chat notifications.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "furnishop"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	payrollRuns     *prometheus.CounterVec
	payrollEntries  *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
}

// New registers the collectors on reg. Passing nil uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		gatherer: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		payrollRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_calculations_total",
			Help:      "Payroll calculations by payment method and outcome.",
		}, []string{"method", "result"}),
		payrollEntries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payroll_entries",
			Help:      "Entries produced per payroll calculation.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"method"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Chat messages by delivery result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.payrollRuns,
		m.payrollEntries,
		m.notifications,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// PayrollCalculated records one calculation run.
func (m *Metrics) PayrollCalculated(method string, entries int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.payrollRuns.WithLabelValues(method, "error").Inc()
		return
	}
	m.payrollRuns.WithLabelValues(method, "ok").Inc()
	m.payrollEntries.WithLabelValues(method).Observe(float64(entries))
}

// NotificationSent records one delivery attempt.
func (m *Metrics) NotificationSent(success bool) {
	if m == nil {
		return
	}
	result := "failed"
	if success {
		result = "sent"
	}
	m.notifications.WithLabelValues(result).Inc()
}
