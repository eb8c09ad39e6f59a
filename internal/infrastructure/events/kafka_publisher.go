package events

import (
	"context"
	"encoding/json"
	"fmt"

	"ecommerce_api/internal/domain/entities"

	"github.com/segmentio/kafka-go"
)

const defaultProductEventsTopic = "product-events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ messageWriter = (*kafka.Writer)(nil)

// KafkaPublisher writes events keyed by product id, so every event of one
// product lands on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaWriter builds a hash-balanced writer for the product events topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	if topic == "" {
		topic = defaultProductEventsTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev entities.ProductEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.ProductID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
			{Key: "correlation_id", Value: []byte(ev.CorrelationID)},
		},
		Time: ev.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write product event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
