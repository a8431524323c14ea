package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartschedule/timetable-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the scheduling core.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	mutationTotal     *prometheus.CounterVec
	detectionRuns     prometheus.Counter
	detectionDuration prometheus.Histogram
	conflictGauge     *prometheus.GaugeVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_mutations_total",
		Help: "Total schedule store mutations by operation",
	}, []string{"operation"})

	detectionRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_detection_runs_total",
		Help: "Total conflict detection runs",
	})

	detectionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "conflict_detection_duration_seconds",
		Help:    "Duration of conflict detection runs",
		Buckets: prometheus.DefBuckets,
	})

	conflictGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_conflicts",
		Help: "Current number of schedule conflicts by severity",
	}, []string{"severity"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, mutationTotal, detectionRuns, detectionDuration, conflictGauge, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		mutationTotal:     mutationTotal,
		detectionRuns:     detectionRuns,
		detectionDuration: detectionDuration,
		conflictGauge:     conflictGauge,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordMutation counts a successful store mutation.
func (m *MetricsService) RecordMutation(operation string) {
	if m == nil {
		return
	}
	m.mutationTotal.WithLabelValues(operation).Inc()
}

// ObserveDetection records one detector run and refreshes the per-severity
// conflict gauge from the merged conflict list.
func (m *MetricsService) ObserveDetection(duration time.Duration, conflicts []models.Conflict) {
	if m == nil {
		return
	}
	m.detectionRuns.Inc()
	m.detectionDuration.Observe(duration.Seconds())

	counts := map[string]int{
		models.SeverityLow:      0,
		models.SeverityMedium:   0,
		models.SeverityHigh:     0,
		models.SeverityCritical: 0,
	}
	for _, c := range conflicts {
		counts[c.Severity]++
	}
	for severity, count := range counts {
		m.conflictGauge.WithLabelValues(severity).Set(float64(count))
	}
}
