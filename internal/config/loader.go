package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"tracker/internal/constants"
)

func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetConfigFile(configFile)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(v, &cfg)

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tracker.platform", constants.DefaultPlatform)
	v.SetDefault("tracker.concurrency", constants.DefaultConcurrency)
	v.SetDefault("tracker.topic", constants.DefaultTopic)
	v.SetDefault("broker.type", constants.BrokerTypeLog)
	v.SetDefault("broker.kafka.batch_timeout", constants.KafkaBatchTimeout)
	v.SetDefault("broker.kafka.write_timeout", constants.KafkaWriteTimeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("tracker.namespace", "TRACKER_NAMESPACE")
	v.BindEnv("tracker.app_id", "TRACKER_APP_ID")
	v.BindEnv("tracker.platform", "TRACKER_PLATFORM")
	v.BindEnv("tracker.topic", "TRACKER_TOPIC")
	v.BindEnv("tracker.version_suffix", "TRACKER_VERSION_SUFFIX")

	v.BindEnv("broker.type", "BROKER_TYPE")
	v.BindEnv("broker.kafka.brokers", "BROKER_KAFKA_BROKERS")

	v.BindEnv("logging.level", "LOGGING_LEVEL")
	v.BindEnv("logging.format", "LOGGING_FORMAT")

	v.BindEnv("tracing.otlp.endpoint", "TRACING_OTLP_ENDPOINT")
	v.BindEnv("tracing.otlp.insecure", "TRACING_OTLP_INSECURE")
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.service_name", "TRACING_SERVICE_NAME")
}

// applyEnvOverrides splits comma separated broker lists, which viper leaves
// as a single element when they come from the environment.
func applyEnvOverrides(v *viper.Viper, cfg *Config) {
	if brokersEnv := v.GetString("BROKER_KAFKA_BROKERS"); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		if len(brokers) > 0 && brokers[0] != "" {
			cfg.Broker.Kafka.Brokers = brokers
		}
	}
}
