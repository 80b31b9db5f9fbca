package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"tracker/internal/constants"
	"tracker/pkg/metrics"
	"tracker/pkg/models"
)

// LogProducer writes each event as one JSON line. It backs the "log" broker
// type used for local runs and dry runs of the CLI.
type LogProducer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewLogProducer(out io.Writer) *LogProducer {
	return &LogProducer{out: out}
}

func (p *LogProducer) Publish(ctx context.Context, topic string, ev models.TrackedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(struct {
		Topic string              `json:"topic"`
		Event models.TrackedEvent `json:"event"`
	}{Topic: topic, Event: ev})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.out.Write(append(line, '\n')); err != nil {
		metrics.IncMessagesWritten(constants.BrokerTypeLog, topic, "error")
		return fmt.Errorf("failed to write event: %w", err)
	}

	metrics.IncMessagesWritten(constants.BrokerTypeLog, topic, "success")
	metrics.ObserveMessageSize(constants.BrokerTypeLog, topic, len(line))
	return nil
}

func (p *LogProducer) Close() error {
	return nil
}
