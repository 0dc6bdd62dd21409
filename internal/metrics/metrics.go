package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Pipeline metrics
	fetchesTotal  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	cacheRequests *prometheus.CounterVec
	rowsDropped   *prometheus.CounterVec
	datasetSize   prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Pipeline metrics
	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiiscan_fetches_total",
			Help: "Total number of source fetches",
		},
		[]string{"outcome"},
	)
	r.fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fiiscan_fetch_duration_seconds",
			Help:    "Source fetch and normalize duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
	r.cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiiscan_cache_requests_total",
			Help: "Total number of dataset cache lookups",
		},
		[]string{"result"},
	)
	r.rowsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiiscan_rows_dropped_total",
			Help: "Total number of listing rows excluded during normalization",
		},
		[]string{"reason"},
	)
	r.datasetSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fiiscan_dataset_size",
			Help: "Number of records in the current dataset",
		},
	)

	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.cacheRequests)
	reg.MustRegister(r.rowsDropped)
	reg.MustRegister(r.datasetSize)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetch records one refresh attempt and its duration.
func (r *Registry) RecordFetch(outcome string, duration float64) {
	r.fetchesTotal.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(duration)
}

// RecordCacheHit records a lookup served from the TTL window.
func (r *Registry) RecordCacheHit() {
	r.cacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a lookup that needed a refresh.
func (r *Registry) RecordCacheMiss() {
	r.cacheRequests.WithLabelValues("miss").Inc()
}

// RecordRowsDropped records rows excluded during normalization, by reason.
func (r *Registry) RecordRowsDropped(reason string, count int) {
	if count > 0 {
		r.rowsDropped.WithLabelValues(reason).Add(float64(count))
	}
}

// SetDatasetSize sets the current dataset size.
func (r *Registry) SetDatasetSize(size int) {
	r.datasetSize.Set(float64(size))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
