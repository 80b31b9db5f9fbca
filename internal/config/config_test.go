package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		Tracker: TrackerConfig{
			Namespace:   "web",
			Concurrency: 2,
			Topic:       "tracked_events",
		},
		Broker: BrokerConfig{Type: "log"},
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
tracker:
  namespace: web
  app_id: consent-portal
  validate_schemas: true
broker:
  type: kafka
  kafka:
    brokers: ["localhost:9092"]
    write_timeout: 3s
logging:
  level: debug
circuit_breaker:
  enabled: true
  max_requests: 2
  failure_ratio: 0.5
global_contexts:
  - schema: iglu:com.acme/app/jsonschema/1-0-0
    data:
      build: "42"
    filter: schema.contains("consent_")
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Tracker.Namespace)
	assert.Equal(t, "consent-portal", cfg.Tracker.AppID)
	assert.Equal(t, "srv", cfg.Tracker.Platform)
	assert.Equal(t, 4, cfg.Tracker.Concurrency)
	assert.Equal(t, "tracked_events", cfg.Tracker.Topic)
	assert.True(t, cfg.Tracker.ValidateSchemas)

	assert.Equal(t, "kafka", cfg.Broker.Type)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Broker.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Broker.Kafka.WriteTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Broker.Kafka.BatchTimeout)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.True(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, uint32(2), cfg.CircuitBreaker.MaxRequests)

	require.Len(t, cfg.GlobalContexts, 1)
	assert.Equal(t, "iglu:com.acme/app/jsonschema/1-0-0", cfg.GlobalContexts[0].Schema)
	assert.Equal(t, "42", cfg.GlobalContexts[0].Data["build"])
	assert.Equal(t, `schema.contains("consent_")`, cfg.GlobalContexts[0].Filter)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
tracker:
  namespace: web
broker:
  type: kafka
  kafka:
    brokers: ["file:9092"]
`)
	t.Setenv("BROKER_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("TRACKER_NAMESPACE", "mobile")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Broker.Kafka.Brokers)
	assert.Equal(t, "mobile", cfg.Tracker.Namespace)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
broker:
  type: log
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker.namespace")
}

func TestValidateStatic(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		field  string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no namespace", mutate: func(cfg *Config) { cfg.Tracker.Namespace = "" }, field: "tracker.namespace"},
		{name: "negative concurrency", mutate: func(cfg *Config) { cfg.Tracker.Concurrency = -1 }, field: "tracker.concurrency"},
		{name: "no topic", mutate: func(cfg *Config) { cfg.Tracker.Topic = "" }, field: "tracker.topic"},
		{name: "no broker type", mutate: func(cfg *Config) { cfg.Broker.Type = "" }, field: "broker.type"},
		{name: "unknown broker", mutate: func(cfg *Config) { cfg.Broker.Type = "rabbitmq" }, field: "broker.type"},
		{name: "kafka without brokers", mutate: func(cfg *Config) { cfg.Broker.Type = "kafka" }, field: "broker.kafka.brokers"},
		{
			name: "kafka empty broker",
			mutate: func(cfg *Config) {
				cfg.Broker.Type = "kafka"
				cfg.Broker.Kafka.Brokers = []string{"a:9092", ""}
			},
			field: "broker.kafka.brokers[1]",
		},
		{
			name: "bad failure ratio",
			mutate: func(cfg *Config) {
				cfg.CircuitBreaker.Enabled = true
				cfg.CircuitBreaker.FailureRatio = 1.5
			},
			field: "circuit_breaker.failure_ratio",
		},
		{name: "tracing without endpoint", mutate: func(cfg *Config) { cfg.Tracing.Enabled = true }, field: "tracing.otlp.endpoint"},
		{
			name: "bad global context schema",
			mutate: func(cfg *Config) {
				cfg.GlobalContexts = []GlobalContextConfig{{Schema: "not-a-schema"}}
			},
			field: "global_contexts[0].schema",
		},
		{
			name: "bad global context filter",
			mutate: func(cfg *Config) {
				cfg.GlobalContexts = []GlobalContextConfig{
					{Schema: "iglu:com.acme/user/jsonschema/1-0-0", Filter: `schema.contains("consent")`},
					{Schema: "iglu:com.acme/env/jsonschema/1-0-0", Filter: "schema +"},
				}
			},
			field: "global_contexts[1].filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateStatic(cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateStaticReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Tracker.Namespace = ""
	cfg.Broker.Type = ""

	err := ValidateStatic(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker.namespace")
	assert.Contains(t, err.Error(), "broker.type")
}

func TestValidateStaticReportsFilterAlongsideOtherErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Tracker.Namespace = ""
	cfg.GlobalContexts = []GlobalContextConfig{
		{Schema: "iglu:com.acme/env/jsonschema/1-0-0", Filter: "unknown_var == 1"},
	}

	err := ValidateStatic(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker.namespace")
	assert.Contains(t, err.Error(), "global_contexts[0].filter")
}
