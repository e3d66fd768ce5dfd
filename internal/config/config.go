package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the router worker
type Config struct {
	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"query-router-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"router.queries"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"query-routers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"router.routed"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`

	// Decision sink: "redis" publishes to RESULT_STREAM, "kafka" to the topic of the same name
	Sink         string   `env:"SINK" envDefault:"redis"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	// Routing catalog (empty uses the embedded default)
	RoutingFile string `env:"ROUTING_FILE" envDefault:""`

	// Semantic classifier configuration
	ClassifierProvider string        `env:"CLASSIFIER_PROVIDER" envDefault:"huggingface"`
	ClassifierTimeout  time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"30s"`
	HypothesisTemplate string        `env:"HYPOTHESIS_TEMPLATE" envDefault:"This text is about {}."`

	// Hugging Face inference configuration
	HFAPIURL   string `env:"HF_API_URL" envDefault:"https://api-inference.huggingface.co/models"`
	HFAPIToken string `env:"HF_API_TOKEN"`
	HFModel    string `env:"HF_MODEL" envDefault:"facebook/bart-large-mnli"`

	// LLM configuration
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	LLMAPIKey   string `env:"LLM_API_KEY"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"claude-sonnet-4-20250514"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8082"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.StreamKey == "" {
		return fmt.Errorf("STREAM_KEY is required")
	}

	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}

	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("BLOCK_TIME must be positive")
	}

	switch c.Sink {
	case SinkRedis:
	case SinkKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when SINK=kafka")
		}
	default:
		return fmt.Errorf("SINK must be one of: redis, kafka")
	}

	switch c.ClassifierProvider {
	case ProviderHuggingFace:
		if c.HFAPIURL == "" {
			return fmt.Errorf("HF_API_URL is required")
		}
		if c.HFModel == "" {
			return fmt.Errorf("HF_MODEL is required")
		}
	case ProviderLLM:
		if c.LLMProvider == "" {
			return fmt.Errorf("LLM_PROVIDER is required")
		}
		if c.LLMModel == "" {
			return fmt.Errorf("LLM_MODEL is required")
		}
		// LLM_API_KEY is checked when the client is built
	default:
		return fmt.Errorf("CLASSIFIER_PROVIDER must be one of: huggingface, llm")
	}

	if c.ClassifierTimeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}

	if strings.Count(c.HypothesisTemplate, "{}") != 1 {
		return fmt.Errorf("HYPOTHESIS_TEMPLATE must contain exactly one {} placeholder")
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

const (
	SinkRedis = "redis"
	SinkKafka = "kafka"

	ProviderHuggingFace = "huggingface"
	ProviderLLM         = "llm"
)

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, ResultStream=%s, "+
			"Sink=%s, ClassifierProvider=%s, ClassifierTimeout=%s, RoutingFile=%q, HealthPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.Sink,
		c.ClassifierProvider,
		c.ClassifierTimeout,
		c.RoutingFile,
		c.HealthPort,
		c.LogLevel,
	)
}
