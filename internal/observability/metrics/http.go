package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns a private registry with the request metrics plus
// the adaptation/extraction pipeline counters.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	adaptationsTotal *prometheus.CounterVec
	analysesTotal    *prometheus.CounterVec
	extractionsTotal *prometheus.CounterVec
	fallbacksTotal   *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meditalks",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meditalks",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "meditalks",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	adaptationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meditalks",
			Subsystem: "adaptation",
			Name:      "messages_total",
			Help:      "Total adapted messages by producing source.",
		},
		[]string{"service", "source"},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meditalks",
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Total document analyses by producing source.",
		},
		[]string{"service", "source"},
	)
	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meditalks",
			Subsystem: "extraction",
			Name:      "documents_total",
			Help:      "Total PDF extraction attempts by method and outcome.",
		},
		[]string{"service", "method", "status"},
	)
	fallbacksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meditalks",
			Subsystem: "pipeline",
			Name:      "fallbacks_total",
			Help:      "Total responses served from static fallbacks.",
		},
		[]string{"service", "component"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		adaptationsTotal,
		analysesTotal,
		extractionsTotal,
		fallbacksTotal,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		adaptationsTotal: adaptationsTotal,
		analysesTotal:    analysesTotal,
		extractionsTotal: extractionsTotal,
		fallbacksTotal:   fallbacksTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordAdaptation counts a served adaptation; source is the provider name
// or "fallback".
func (m *HTTPServerMetrics) RecordAdaptation(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.adaptationsTotal.WithLabelValues(service, source).Inc()
	if source == "fallback" {
		m.fallbacksTotal.WithLabelValues(service, "adaptation").Inc()
	}
}

// RecordAnalysis counts a served document analysis by producing source.
func (m *HTTPServerMetrics) RecordAnalysis(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.analysesTotal.WithLabelValues(service, source).Inc()
	if source == "fallback" {
		m.fallbacksTotal.WithLabelValues(service, "analysis").Inc()
	}
}

// RecordExtraction counts a PDF extraction outcome. method is empty when
// every extractor failed.
func (m *HTTPServerMetrics) RecordExtraction(service, method, status string) {
	if method == "" {
		method = "none"
	}
	m.extractionsTotal.WithLabelValues(service, method, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
