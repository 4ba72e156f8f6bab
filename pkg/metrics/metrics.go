package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduler metrics
	RemindersSent     prometheus.Counter
	AlertsSent        prometheus.Counter
	JobFailures       *prometheus.CounterVec
	JobSkipped        *prometheus.CounterVec
	JobDuration       *prometheus.HistogramVec
	MeetingsScanned   prometheus.Counter

	// Dispatcher metrics
	NotificationsCreated prometheus.Counter
	EmailsSent           prometheus.Counter
	EmailsFailed         prometheus.Counter
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Total number of meeting reminders produced by the reminder job",
		}),
		AlertsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unconfirmed_alerts_sent_total",
			Help:      "Total number of unconfirmed-meeting alerts produced",
		}),
		JobFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_failures_total",
			Help:      "Per-meeting failures inside scheduler ticks",
		}, []string{"job"}),
		JobSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_ticks_skipped_total",
			Help:      "Ticks skipped because the previous run was still in progress",
		}, []string{"job"}),
		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduler job runs",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"job"}),
		MeetingsScanned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_scanned_total",
			Help:      "Meetings examined by scheduler jobs",
		}),
		NotificationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Notification records persisted",
		}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Emails delivered to the SMTP transport",
		}),
		EmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "Email deliveries that failed or timed out",
		}),
	}
}
