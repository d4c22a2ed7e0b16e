package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OutboxPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Total number of outbox records accepted by the broker",
		},
	)

	OutboxPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_publish_failures_total",
			Help: "Total number of outbox publish batches rolled back",
		},
	)

	EventsProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_processed_total",
			Help: "Total number of events applied to projections",
		},
	)

	DuplicateEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_events_total",
			Help: "Total number of redelivered events skipped by the dedup ledger",
		},
	)

	ConsumerErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consumer_errors_total",
			Help: "Total number of messages rejected and requeued",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		OutboxPublishedTotal,
		OutboxPublishFailuresTotal,
		EventsProcessedTotal,
		DuplicateEventsTotal,
		ConsumerErrorsTotal,
	)
}
