package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels successful analyses.
	OutcomeSuccess = "success"
	// OutcomeError labels failed analyses.
	OutcomeError = "error"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aegis",
			Name:      "analyses_total",
			Help:      "Total number of issue analyses handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aegis",
			Name:      "analysis_seconds",
			Help:      "Issue analysis latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aegis",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups partitioned by namespace and result.",
		},
		[]string{"namespace", "result"},
	)

	sweepAlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aegis",
			Name:      "sweep_alerts_total",
			Help:      "Alerts raised by the critical issue sweep, by alert type.",
		},
		[]string{"type"},
	)

	indexSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aegis",
			Name:      "similarity_index_size",
			Help:      "Number of issue vectors currently in the similarity index.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aegis",
			Name:      "http_requests_total",
			Help:      "HTTP requests partitioned by method, route, and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aegis",
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds, by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// Register attaches all collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		cacheLookupsTotal,
		sweepAlertsTotal,
		indexSize,
		httpRequestsTotal,
		httpRequestSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records an analysis duration and outcome label.
func ObserveAnalysis(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	analysesTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// ObserveCacheLookup records a cache hit or miss for a namespace.
func ObserveCacheLookup(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(namespace, result).Inc()
}

// ObserveSweepAlert records one alert raised by the sweep.
func ObserveSweepAlert(alertType string) {
	sweepAlertsTotal.WithLabelValues(alertType).Inc()
}

// SetIndexSize updates the similarity index size gauge.
func SetIndexSize(n int) {
	indexSize.Set(float64(n))
}

// ObserveHTTPRequest records one handled HTTP request. Route is the
// registered route pattern, not the raw path, to keep cardinality low.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
