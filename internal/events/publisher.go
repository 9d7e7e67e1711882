package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Writer describes the kafka.Writer functions the publisher interacts with.
type Writer interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Publisher writes reference events to a single topic, typed by the
// event_type header the platform consumers route on.
type Publisher struct {
	writer Writer
}

// NewPublisher constructs a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

// NewPublisherWithWriter constructs a publisher over an existing writer.
func NewPublisherWithWriter(writer Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Publish encodes payload and writes it keyed by key.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   raw,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
