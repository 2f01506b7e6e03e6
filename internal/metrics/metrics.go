// Package metrics exposes Prometheus collectors for backend calls and
// feature submissions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orusweb",
			Name:      "backend_requests_total",
			Help:      "Backend API calls by client role, endpoint and status code",
		},
		[]string{"client", "endpoint", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orusweb",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency",
			Buckets:   []float64{0.02, 0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 10},
		},
		[]string{"client", "endpoint"},
	)

	SessionExpiredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orusweb",
			Name:      "session_expired_total",
			Help:      "401 responses that ended a session",
		},
		[]string{"client"},
	)

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orusweb",
			Name:      "feature_submissions_total",
			Help:      "Feature form submissions by outcome",
		},
		[]string{"feature", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(BackendRequestsTotal, BackendRequestDuration, SessionExpiredTotal, SubmissionsTotal)
}

// ObserveRequest records one backend call. status 0 means a transport error.
func ObserveRequest(client, endpoint string, status int, took time.Duration) {
	BackendRequestsTotal.WithLabelValues(client, endpoint, strconv.Itoa(status)).Inc()
	BackendRequestDuration.WithLabelValues(client, endpoint).Observe(took.Seconds())
}

func IncSessionExpired(client string) {
	SessionExpiredTotal.WithLabelValues(client).Inc()
}

func IncSubmission(feature, outcome string) {
	SubmissionsTotal.WithLabelValues(feature, outcome).Inc()
}
