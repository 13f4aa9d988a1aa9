package kafka

import (
	"context"
	"fmt"

	"messaging-service/internal/config"

	"github.com/IBM/sarama"
)

// Publisher delivers one keyed record to the notification topic.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

// NewPublisher builds the publisher selected by cfg.Driver and wraps it in a
// circuit breaker.
func NewPublisher(cfg *config.KafkaConfig) (Publisher, error) {
	var (
		inner Publisher
		err   error
	)
	switch cfg.Driver {
	case "", "sarama":
		inner, err = NewSaramaPublisher(cfg.Brokers, cfg.Topic, cfg.ClientID)
	case "kafka-go":
		inner = NewKafkaGoPublisher(cfg.Brokers, cfg.Topic)
	default:
		return nil, fmt.Errorf("unsupported kafka driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return NewBreakerPublisher(inner, cfg.BreakerFailures, cfg.BreakerTimeout), nil
}

func NewSaramaConfig(clientID string) *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner // same key, same partition
	config.Version = sarama.V2_0_0_0
	config.ClientID = clientID
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// SaramaPublisher publishes through a sarama SyncProducer.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaPublisher(brokers []string, topic, clientID string) (*SaramaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewSaramaPublisherWithProducer(producer, topic), nil
}

// NewSaramaPublisherWithProducer wraps an existing producer.
func NewSaramaPublisherWithProducer(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func (p *SaramaPublisher) Publish(_ context.Context, key string, value []byte) error {
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}
	return nil
}

func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}
