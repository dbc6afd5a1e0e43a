package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec
	progressSubscribers prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors for the console API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total number of console API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_latency_seconds",
			Help:    "Latency distribution for console API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_errors_total",
			Help: "Total number of error responses returned by console endpoints.",
		}, []string{"method", "route", "status"})

		progressSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "console_progress_subscribers",
			Help: "Number of live progress stream subscribers.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, progressSubscribers)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ProgressSubscribers exposes the live subscriber gauge.
func ProgressSubscribers() prometheus.Gauge {
	RegisterMetrics()
	return progressSubscribers
}
