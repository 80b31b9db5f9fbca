package broker

import (
	"context"
	"fmt"

	"tracker/pkg/circuitbreaker"
	"tracker/pkg/errors"
	"tracker/pkg/models"
)

// CircuitBreakerProducer stops calling a failing producer for a while
// instead of letting every tracked event wait on it.
type CircuitBreakerProducer struct {
	producer Producer
	cb       *circuitbreaker.Wrapper
	name     string
}

func NewCircuitBreakerProducer(producer Producer, name string, cfg circuitbreaker.Config) *CircuitBreakerProducer {
	return &CircuitBreakerProducer{
		producer: producer,
		cb:       circuitbreaker.NewWrapper(cfg),
		name:     name,
	}
}

func (p *CircuitBreakerProducer) Publish(ctx context.Context, topic string, ev models.TrackedEvent) error {
	err := p.cb.Execute(ctx, func() error {
		return p.producer.Publish(ctx, topic, ev)
	})
	if err == nil {
		return nil
	}

	if p.cb.IsOpen() {
		return errors.Wrap(err, errors.ErrUnavailable.WithMessage(fmt.Sprintf("circuit breaker is open for %s", p.name)))
	}
	return err
}

func (p *CircuitBreakerProducer) State() string {
	return p.cb.State().String()
}

func (p *CircuitBreakerProducer) Close() error {
	return p.producer.Close()
}
