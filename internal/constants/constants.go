package constants

import "time"

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaWriteTimeout = 10 * time.Second
)

const (
	BrokerTypeKafka = "kafka"
	BrokerTypeLog   = "log"
)

const (
	DefaultTopic       = "tracked_events"
	DefaultPlatform    = "srv"
	DefaultConcurrency = 4
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	StatusSuccess  = "success"
	StatusInvalid  = "invalid"
	StatusPanicked = "panicked"
	StatusFailed   = "emit_failed"
)

const (
	TracerName     = "tracker"
	TrackerVersion = "go-tracker-0.1.0"
)
