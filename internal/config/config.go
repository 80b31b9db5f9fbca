package config

import (
	"time"
)

type Config struct {
	Tracker        TrackerConfig
	Broker         BrokerConfig
	Logging        LoggingConfig
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Tracing        TracingConfig
	GlobalContexts []GlobalContextConfig `mapstructure:"global_contexts"`
}

type TrackerConfig struct {
	Namespace       string `mapstructure:"namespace"`
	AppID           string `mapstructure:"app_id"`
	Platform        string `mapstructure:"platform"`
	ValidateSchemas bool   `mapstructure:"validate_schemas"`
	Concurrency     int    `mapstructure:"concurrency"`
	Topic           string `mapstructure:"topic"`
	VersionSuffix   string `mapstructure:"version_suffix"`
}

type BrokerConfig struct {
	Type  string      `mapstructure:"type"`
	Kafka KafkaConfig `mapstructure:"kafka"`
}

type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

type TracingConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	ServiceName string        `mapstructure:"service_name"`
	OTLP        OTLPConfig    `mapstructure:"otlp"`
	Sampler     SamplerConfig `mapstructure:"sampler"`
}

type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type SamplerConfig struct {
	Type  string  `mapstructure:"type"`
	Param float64 `mapstructure:"param"`
}

// GlobalContextConfig is a context attached to every tracked event whose
// filter expression, if any, evaluates to true.
type GlobalContextConfig struct {
	Schema string                 `mapstructure:"schema"`
	Data   map[string]interface{} `mapstructure:"data"`
	Filter string                 `mapstructure:"filter"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
