package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsTrackedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_events_total",
			Help: "Total number of events processed by the tracker (count)",
		},
		[]string{"schema", "status"},
	)

	EventContextsAttached = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_event_contexts",
			Help:    "Number of contexts attached to an emitted event",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"schema"},
	)

	GlobalContextsAppliedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_global_contexts_applied_total",
			Help: "Total number of global contexts attached to events (count)",
		},
		[]string{"context_schema"},
	)

	TrackDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_track_duration_ms",
			Help:    "Time from hand-off to emission in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"status"},
	)

	MessagesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_messages_written_total",
			Help: "Total number of envelopes written by the emitter (count)",
		},
		[]string{"broker", "topic", "status"},
	)

	MessageSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_message_size_bytes",
			Help:    "Size of emitted envelopes in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		},
		[]string{"broker", "topic"},
	)

	WriteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_write_duration_ms",
			Help:    "Duration of emitter writes in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"broker", "topic"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)
)

var registerOnce sync.Once

// Register adds every collector to reg. It is safe to call more than once.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			EventsTrackedTotal,
			EventContextsAttached,
			GlobalContextsAppliedTotal,
			TrackDuration,
			MessagesWrittenTotal,
			MessageSizeBytes,
			WriteDuration,
			CircuitBreakerState,
			CircuitBreakerRequests,
			CircuitBreakerFailures,
		)
	})
}

func IncEventsTracked(schema, status string) {
	EventsTrackedTotal.WithLabelValues(schema, status).Inc()
}

func ObserveContextsAttached(schema string, count int) {
	EventContextsAttached.WithLabelValues(schema).Observe(float64(count))
}

func IncGlobalContextApplied(contextSchema string) {
	GlobalContextsAppliedTotal.WithLabelValues(contextSchema).Inc()
}

func ObserveTrackDuration(duration time.Duration, status string) {
	TrackDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func IncMessagesWritten(broker, topic, status string) {
	MessagesWrittenTotal.WithLabelValues(broker, topic, status).Inc()
}

func ObserveMessageSize(broker, topic string, sizeBytes int) {
	MessageSizeBytes.WithLabelValues(broker, topic).Observe(float64(sizeBytes))
}

func ObserveWriteDuration(broker, topic string, duration time.Duration) {
	WriteDuration.WithLabelValues(broker, topic).Observe(float64(duration.Milliseconds()))
}
