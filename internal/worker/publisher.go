package worker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Publisher delivers encoded routing events to a named topic
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
	Close() error
}

// RedisStreamPublisher publishes events to Redis Streams, one stream per topic
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a Redis Streams publisher
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client}
}

// Publish appends the payload to the topic stream
func (p *RedisStreamPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{
			"key":  key,
			"data": string(payload),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by the caller
func (p *RedisStreamPublisher) Close() error {
	return nil
}

// KafkaPublisher publishes events to Kafka topics
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a Kafka publisher. The topic is chosen per message.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes the payload keyed by request id
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

// Close flushes and closes the Kafka writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
