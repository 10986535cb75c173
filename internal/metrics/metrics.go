package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_reservation_transitions_total",
			Help: "Reservation lifecycle transitions by resulting state",
		},
		[]string{"state"},
	)

	ReservationConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_reservation_conflicts_total",
			Help: "Rejected reservation attempts by conflict reason",
		},
		[]string{"reason"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_payments_total",
			Help: "Recorded payments by kind and method",
		},
		[]string{"kind", "method"},
	)

	PaymentAmountCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtbook_payment_amount_cents_total",
			Help: "Sum of recorded payment amounts in cents",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	SchedulerJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_scheduler_job_runs_total",
			Help: "Scheduled job runs by job and outcome",
		},
		[]string{"job", "status"},
	)

	RateLimitedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtbook_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"path"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationTransition(state string) {
	ReservationTransitionsTotal.WithLabelValues(state).Inc()
}

func RecordReservationConflict(reason string) {
	ReservationConflictsTotal.WithLabelValues(reason).Inc()
}

func RecordPayment(kind, method string, amountCents int64) {
	PaymentsTotal.WithLabelValues(kind, method).Inc()
	PaymentAmountCents.Add(float64(amountCents))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordJobRun(job, status string) {
	SchedulerJobRunsTotal.WithLabelValues(job, status).Inc()
}

func RecordRateLimited(path string) {
	RateLimitedRequestsTotal.WithLabelValues(path).Inc()
}
