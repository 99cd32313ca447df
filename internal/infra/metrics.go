package infra

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exposed on /metrics. Each engine gets its own
// registry so tests can build routers repeatedly.
type Metrics struct {
	Registry           *prometheus.Registry
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	DocumentosEscritos *prometheus.CounterVec
	JobsEncolados      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crkitchen",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crkitchen",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		DocumentosEscritos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crkitchen",
			Name:      "documents_written_total",
			Help:      "Documents written per collection.",
		}, []string{"collection"}),
		JobsEncolados: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crkitchen",
			Name:      "jobs_enqueued_total",
			Help:      "Async jobs enqueued per type.",
		}, []string{"type"}),
	}
	m.Registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.DocumentosEscritos,
		m.JobsEncolados,
		prometheus.NewGoCollector(),
	)
	return m
}
