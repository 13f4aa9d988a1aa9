package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// KafkaGoPublisher publishes through a segmentio/kafka-go Writer.
type KafkaGoPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaGoPublisher(brokers []string, topic string) *KafkaGoPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		Async:        false,
	}
	return &KafkaGoPublisher{writer: w}
}

func (p *KafkaGoPublisher) Publish(ctx context.Context, key string, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaGoPublisher) Close() error {
	return p.writer.Close()
}
