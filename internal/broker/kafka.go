package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"tracker/internal/config"
	"tracker/internal/constants"
	"tracker/internal/logger"
	"tracker/pkg/metrics"
	"tracker/pkg/models"
	"tracker/pkg/tracing"
)

const (
	headerContentType = "content-type"
	headerSchema      = "event-schema"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
	logger logger.Logger
}

func NewKafkaProducer(cfg config.KafkaConfig, log logger.Logger) *KafkaProducer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = constants.KafkaBatchTimeout
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = constants.KafkaWriteTimeout
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
		Async:                  false,
	}
	return &KafkaProducer{writer: w, logger: log}
}

// Publish keys messages by event id so redeliveries of one event land on the
// same partition.
func (p *KafkaProducer) Publish(ctx context.Context, topic string, ev models.TrackedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := []kafka.Header{
		{Key: headerContentType, Value: []byte("application/json")},
		{Key: headerSchema, Value: []byte(ev.Schema)},
	}
	headers = tracing.InjectTraceContext(ctx, headers)

	start := time.Now()
	err = p.writer.WriteMessages(ctx,
		kafka.Message{
			Topic:   topic,
			Key:     []byte(ev.EventID),
			Value:   body,
			Headers: headers,
			Time:    ev.Timestamp,
		},
	)
	metrics.ObserveWriteDuration(constants.BrokerTypeKafka, topic, time.Since(start))

	if err != nil {
		metrics.IncMessagesWritten(constants.BrokerTypeKafka, topic, "error")
		return fmt.Errorf("failed to write kafka message: %w", err)
	}

	metrics.IncMessagesWritten(constants.BrokerTypeKafka, topic, "success")
	metrics.ObserveMessageSize(constants.BrokerTypeKafka, topic, len(body))
	p.logger.DebugwCtx(ctx, "Event written to kafka",
		"topic", topic,
		"size_bytes", len(body),
	)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
