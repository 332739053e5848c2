// Package metrics exposes render and HTTP metrics in the Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invoice2pdf"

// Render outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Metrics owns a registry and the collectors registered on it. The render
// methods satisfy invoice2pdf.Observer.
type Metrics struct {
	registry *prometheus.Registry

	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	pages         *prometheus.HistogramVec
	fallbacks     *prometheus.CounterVec
	logoSkips     prometheus.Counter

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpSeconds  *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Render calls by document kind and outcome.",
		}, []string{"kind", "outcome"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Render duration by document kind.",
			Buckets:   prometheus.ExponentialBuckets(0.002, 2, 12), // 2ms to ~4s
		}, []string{"kind"}),
		pages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "pages",
			Help:      "Pages per rendered document.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}, []string{"kind"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "template",
			Name:      "fallbacks_total",
			Help:      "Stored templates replaced by the default, by reason.",
		}, []string{"reason"}),
		logoSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logo",
			Name:      "skipped_total",
			Help:      "Logo references that could not be loaded.",
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by method and route.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.renders, m.renderSeconds, m.pages, m.fallbacks, m.logoSkips,
		m.httpInFlight, m.httpRequests, m.httpSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RenderDone records one render call.
func (m *Metrics) RenderDone(kind string, pages int, elapsed time.Duration, err error) {
	m.renders.WithLabelValues(kind, outcome(err)).Inc()
	if err != nil {
		return
	}
	m.renderSeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.pages.WithLabelValues(kind).Observe(float64(pages))
}

// TemplateFallback records a stored template that was not used.
func (m *Metrics) TemplateFallback(reason string) {
	m.fallbacks.WithLabelValues(reason).Inc()
}

// LogoSkipped records a logo that could not be loaded.
func (m *Metrics) LogoSkipped() {
	m.logoSkips.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// Middleware records request counts and durations. Routes are labeled by
// their chi pattern (e.g. /v1/templates/{accountID}) so account IDs do not
// create new series; unmatched requests share the "unmatched" label.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
