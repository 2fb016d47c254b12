package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CatalogWritesTotal  *prometheus.CounterVec
	CatalogCookies      prometheus.Gauge
)

// Init registers the service metrics on the default registry. Call once at
// startup before any handler runs.
func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CatalogWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_writes_total",
			Help: "Total number of catalog mutations.",
		},
		[]string{"entity", "operation"}, // operation: create, update, delete
	)

	CatalogCookies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cookies",
			Help: "Number of cookies in the catalog as of the last listing.",
		},
	)
}
