package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymcore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MembershipEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_membership_events_total",
			Help: "Total number of membership lifecycle events",
		},
		[]string{"event"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_reservations_total",
			Help: "Total number of reservations created",
		},
		[]string{"type"},
	)

	ClassJoinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_class_joins_total",
			Help: "Total number of group class join attempts",
		},
		[]string{"result"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymcore_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	LoyaltyPointsAwardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymcore_loyalty_points_awarded_total",
			Help: "Total loyalty points awarded",
		},
	)

	LoyaltyPointsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymcore_loyalty_points_expired_total",
			Help: "Total loyalty points expired",
		},
	)

	LoyaltyRedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymcore_loyalty_redemptions_total",
			Help: "Total number of reward redemptions",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymcore_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymcore_notification_queue_length",
			Help: "Current length of notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordNotification(notificationType, status string) {
	NotificationsSentTotal.WithLabelValues(notificationType, status).Inc()
}
