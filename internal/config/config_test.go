package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "router.queries", cfg.StreamKey)
	assert.Equal(t, "router.routed", cfg.ResultStream)
	assert.Equal(t, SinkRedis, cfg.Sink)
	assert.Equal(t, ProviderHuggingFace, cfg.ClassifierProvider)
	assert.Equal(t, "facebook/bart-large-mnli", cfg.HFModel)
	assert.Equal(t, "This text is about {}.", cfg.HypothesisTemplate)
	assert.Equal(t, 30*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CLASSIFIER_PROVIDER", "llm")
	t.Setenv("CLASSIFIER_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SinkKafka, cfg.Sink)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, ProviderLLM, cfg.ClassifierProvider)
	assert.Equal(t, 5*time.Second, cfg.ClassifierTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing stream", func(c *Config) { c.StreamKey = "" }, "STREAM_KEY"},
		{"bad sink", func(c *Config) { c.Sink = "nats" }, "SINK"},
		{"kafka without brokers", func(c *Config) { c.Sink = SinkKafka; c.KafkaBrokers = nil }, "KAFKA_BROKERS"},
		{"bad provider", func(c *Config) { c.ClassifierProvider = "bert" }, "CLASSIFIER_PROVIDER"},
		{"llm without model", func(c *Config) { c.ClassifierProvider = ProviderLLM; c.LLMModel = "" }, "LLM_MODEL"},
		{"zero timeout", func(c *Config) { c.ClassifierTimeout = 0 }, "CLASSIFIER_TIMEOUT"},
		{"template without placeholder", func(c *Config) { c.HypothesisTemplate = "About this." }, "HYPOTHESIS_TEMPLATE"},
		{"bad port", func(c *Config) { c.HealthPort = 70000 }, "HEALTH_PORT"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStringHidesSecrets(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.HFAPIToken = "hf_secret"
	cfg.LLMAPIKey = "sk-secret"
	cfg.RedisPassword = "hunter2"

	s := cfg.String()
	assert.NotContains(t, s, "hf_secret")
	assert.NotContains(t, s, "sk-secret")
	assert.NotContains(t, s, "hunter2")
}
