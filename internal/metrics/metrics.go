// Package metrics defines the Prometheus instrumentation for the dashboard.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streaming_history_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streaming_history_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DashboardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streaming_history_dashboard_compute_seconds",
			Help:    "Time spent filtering and aggregating one dashboard selection",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		},
	)

	EmptySelections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streaming_history_empty_selections_total",
			Help: "Dashboard selections that matched no plays",
		},
	)

	PlaysLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streaming_history_plays_loaded",
			Help: "Plays in the working table",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streaming_history_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordRequest records one finished HTTP request.
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
