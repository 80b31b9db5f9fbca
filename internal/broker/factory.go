package broker

import (
	"fmt"
	"io"

	"tracker/internal/config"
	"tracker/internal/constants"
	"tracker/internal/logger"
	"tracker/pkg/circuitbreaker"
)

// NewProducer builds the producer for cfg.Broker, wrapped in a circuit
// breaker when one is enabled. out receives events for the log broker.
func NewProducer(cfg *config.Config, out io.Writer, log logger.Logger) (Producer, error) {
	var producer Producer
	switch cfg.Broker.Type {
	case constants.BrokerTypeKafka:
		producer = NewKafkaProducer(cfg.Broker.Kafka, log)
	case constants.BrokerTypeLog:
		producer = NewLogProducer(out)
	default:
		return nil, fmt.Errorf("unknown broker type: %s", cfg.Broker.Type)
	}

	if cfg.CircuitBreaker.Enabled {
		producer = NewCircuitBreakerProducer(producer, cfg.Broker.Type, circuitBreakerConfig(cfg.Broker.Type, cfg.CircuitBreaker))
	}

	return producer, nil
}

func circuitBreakerConfig(name string, cfg config.CircuitBreakerConfig) circuitbreaker.Config {
	cbCfg := circuitbreaker.DefaultConfig("producer_" + name)
	if cfg.MaxRequests > 0 {
		cbCfg.MaxRequests = cfg.MaxRequests
	}
	if cfg.Interval > 0 {
		cbCfg.Interval = cfg.Interval
	}
	if cfg.Timeout > 0 {
		cbCfg.Timeout = cfg.Timeout
	}

	minRequests := uint32(3)
	if cfg.MinRequests > 0 {
		minRequests = cfg.MinRequests
	}
	ratio := 0.5
	if cfg.FailureRatio > 0 {
		ratio = cfg.FailureRatio
	}
	cbCfg.ReadyToTrip = circuitbreaker.RatioTrip(minRequests, ratio)

	return cbCfg
}
