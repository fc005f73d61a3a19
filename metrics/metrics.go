// Package metrics holds the Prometheus collectors for the API, the SQLite
// store and the relationship engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "social_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "social_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "social_db_query_duration_seconds",
			Help:    "Duration of SQLite repository calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_db_query_errors_total",
			Help: "Total number of failed SQLite repository calls",
		},
		[]string{"operation", "table"},
	)

	// SocialOperations counts engine operations by outcome: ok, or the error
	// kind (validation, unauthenticated, forbidden, not_found, conflict, internal).
	SocialOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_operations_total",
			Help: "Total number of relationship engine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	FriendRequestOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_friend_requests_total",
			Help: "Friend requests by result (sent or auto-accepted)",
		},
		[]string{"result"},
	)

	GroupsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_groups_deleted_total",
			Help: "Groups deleted, by reason (manager or last_member_left)",
		},
		[]string{"reason"},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDBQuery records a repository call and its failure, if any.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

func RecordSocialOperation(operation, outcome string) {
	SocialOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordFriendRequest(result string) {
	FriendRequestOutcomes.WithLabelValues(result).Inc()
}

func RecordGroupDeleted(reason string) {
	GroupsDeleted.WithLabelValues(reason).Inc()
}
