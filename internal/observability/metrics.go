package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BoardingsTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "campus_shuttle", Name: "boardings_total", Help: "Total number of completed boardings"})
	SeatRefusalsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "campus_shuttle", Name: "seat_refusals_total", Help: "Boarding attempts refused for lack of seats"})
	SimStepsTotal     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "campus_shuttle", Name: "sim_steps_total", Help: "Total live-tracking simulation steps emitted"})
	StoreWritesTotal  = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus_shuttle", Name: "store_writes_total", Help: "Write-through persistence operations by key"},
		[]string{"key"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus_shuttle", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus_shuttle",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
