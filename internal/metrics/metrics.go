// Package metrics holds the Prometheus collectors of the dashboard service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carddash_dataset_rows",
		Help: "Number of transaction rows held in memory",
	})

	DatasetWarnings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carddash_dataset_warnings",
		Help: "Number of rows skipped or defaulted while loading the dataset",
	})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carddash_dataset_load_duration_seconds",
		Help:    "Time spent reading and parsing the dataset archive",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	DashboardBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carddash_dashboard_build_duration_seconds",
		Help:    "Time spent filtering and aggregating one dashboard",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	EmptyAggregates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carddash_empty_aggregates_total",
		Help: "Charts that could not be computed because their row set was empty",
	}, []string{"chart"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carddash_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carddash_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveRequest records one served request
func ObserveRequest(route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
