package config

import (
	"fmt"

	"go.uber.org/multierr"

	"tracker/internal/constants"
	"tracker/pkg/cel"
	"tracker/pkg/payload"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateStatic checks every section and reports all problems at once.
func ValidateStatic(cfg *Config) error {
	return multierr.Combine(
		validateTracker(cfg.Tracker),
		validateBroker(cfg.Broker),
		validateCircuitBreaker(cfg.CircuitBreaker),
		validateTracing(cfg.Tracing),
		validateGlobalContexts(cfg.GlobalContexts),
	)
}

func validateTracker(cfg TrackerConfig) error {
	if cfg.Namespace == "" {
		return &ValidationError{
			Field:   "tracker.namespace",
			Message: "tracker namespace is required",
		}
	}

	if cfg.Concurrency < 0 {
		return &ValidationError{
			Field:   "tracker.concurrency",
			Message: fmt.Sprintf("concurrency must be non-negative, got %d", cfg.Concurrency),
		}
	}

	if cfg.Topic == "" {
		return &ValidationError{
			Field:   "tracker.topic",
			Message: "output topic is required",
		}
	}

	return nil
}

func validateBroker(cfg BrokerConfig) error {
	switch cfg.Type {
	case constants.BrokerTypeKafka:
		return validateKafka(cfg.Kafka)
	case constants.BrokerTypeLog:
		return nil
	case "":
		return &ValidationError{
			Field:   "broker.type",
			Message: "broker type is required",
		}
	default:
		return &ValidationError{
			Field:   "broker.type",
			Message: fmt.Sprintf("unknown broker type: %s (supported: kafka, log)", cfg.Type),
		}
	}
}

func validateKafka(cfg KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return &ValidationError{
			Field:   "broker.kafka.brokers",
			Message: "at least one Kafka broker is required",
		}
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("broker.kafka.brokers[%d]", i),
				Message: "broker address cannot be empty",
			}
		}
	}

	if cfg.WriteTimeout < 0 {
		return &ValidationError{
			Field:   "broker.kafka.write_timeout",
			Message: "write_timeout must be non-negative",
		}
	}

	return nil
}

func validateCircuitBreaker(cfg CircuitBreakerConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.FailureRatio < 0 || cfg.FailureRatio > 1 {
		return &ValidationError{
			Field:   "circuit_breaker.failure_ratio",
			Message: fmt.Sprintf("failure_ratio must be between 0 and 1, got %v", cfg.FailureRatio),
		}
	}

	if cfg.Timeout < 0 || cfg.Interval < 0 {
		return &ValidationError{
			Field:   "circuit_breaker.timeout",
			Message: "timeout and interval must be non-negative",
		}
	}

	return nil
}

func validateTracing(cfg TracingConfig) error {
	if cfg.Enabled && cfg.OTLP.Endpoint == "" {
		return &ValidationError{
			Field:   "tracing.otlp.endpoint",
			Message: "OTLP endpoint is required when tracing is enabled",
		}
	}
	return nil
}

func validateGlobalContexts(contexts []GlobalContextConfig) error {
	var (
		errs error
		eval *cel.Evaluator
	)
	for i, gc := range contexts {
		if err := payload.ValidateSchemaURI(gc.Schema); err != nil {
			errs = multierr.Append(errs, &ValidationError{
				Field:   fmt.Sprintf("global_contexts[%d].schema", i),
				Message: err.Error(),
			})
		}

		if gc.Filter == "" {
			continue
		}
		if eval == nil {
			var err error
			if eval, err = cel.NewEvaluator(); err != nil {
				return multierr.Append(errs, err)
			}
		}
		if err := eval.ValidateExpression(gc.Filter); err != nil {
			errs = multierr.Append(errs, &ValidationError{
				Field:   fmt.Sprintf("global_contexts[%d].filter", i),
				Message: err.Error(),
			})
		}
	}
	return errs
}
