package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Provider interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncStoreOps(table, op string, ok bool)
	ObserveStoreDuration(op string, duration time.Duration)
	SetLogEntries(count int)
}

type PrometheusProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	logEntries      prometheus.Gauge
}

func (m *PrometheusProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *PrometheusProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *PrometheusProvider) IncStoreOps(table, op string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.storeOps.WithLabelValues(table, op, result).Inc()
}

func (m *PrometheusProvider) ObserveStoreDuration(op string, duration time.Duration) {
	m.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *PrometheusProvider) SetLogEntries(count int) {
	m.logEntries.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// New returns a Prometheus-backed provider registered on reg, or a no-op
// provider when metrics are disabled.
func New(enabled bool, reg prometheus.Registerer) Provider {
	if !enabled {
		return Noop{}
	}

	m := &PrometheusProvider{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitbuzz_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bitbuzz_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitbuzz_store_operations_total",
			Help: "Worksheet reads and writes by table and result",
		}, []string{"table", "op", "result"}),

		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bitbuzz_store_duration_seconds",
			Help:    "Worksheet operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		logEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bitbuzz_log_entries",
			Help: "Number of work entries in the last read of the logs worksheet",
		}),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.storeOps, m.storeDuration, m.logEntries)
	return m
}

// Noop is used when metrics are disabled.
type Noop struct{}

func (Noop) IncRequestsTotal(_ string, _ int)                 {}
func (Noop) ObserveRequestDuration(_ string, _ time.Duration) {}
func (Noop) IncStoreOps(_, _ string, _ bool)                  {}
func (Noop) ObserveStoreDuration(_ string, _ time.Duration)   {}
func (Noop) SetLogEntries(_ int)                              {}
