package prometheus

import (
	"net/http"
	"shareit/config"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics interface {
	IncBookingTransition(status string)
	ObserveHTTP(route, method string, code int, elapsed time.Duration)
	Handler() http.Handler
}

type metricsImpl struct {
	registry           *prometheus.Registry
	bookingTransitions *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New builds a dedicated registry so repeated construction never collides.
func New(cfg *config.Config) Metrics {
	namespace := cfg.Metrics.Namespace

	m := &metricsImpl{
		registry: prometheus.NewRegistry(),
		bookingTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_transitions_total",
				Help:      "Bookings entering a status.",
			},
			[]string{"status"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	m.registry.MustRegister(
		m.bookingTransitions,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *metricsImpl) IncBookingTransition(status string) {
	m.bookingTransitions.WithLabelValues(status).Inc()
}

func (m *metricsImpl) ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
