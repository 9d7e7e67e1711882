// Package testhelpers provides reusable plumbing for integration tests that
// exercise the reference-data consumer against real Kafka brokers.
package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/referencedata/internal/config"
	"example.com/referencedata/internal/consumer"
	"example.com/referencedata/internal/engine"
	"example.com/referencedata/internal/events"
)

// ConsumerHandle manages the lifecycle of a running reference consumer.
type ConsumerHandle struct {
	Engine *engine.Engine
	cancel context.CancelFunc
	reader *kafka.Reader
}

// StartReferenceConsumer builds an in-memory reference engine and spins up a
// processor consuming the given topic.
func StartReferenceConsumer(ctx context.Context, brokers []string, topic, language string) (*ConsumerHandle, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("missing brokers")
	}

	eng, err := engine.Build(ctx, config.Config{DefaultLanguage: language})
	if err != nil {
		return nil, err
	}

	hydrators := make([]consumer.LanguageSwitcher, 0, 3)
	for _, svc := range eng.Hydrators() {
		hydrators = append(hydrators, svc)
	}
	handler := consumer.NewReferenceHandler(hydrators, eng.Exercises, eng.GymEquipment, nil)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        fmt.Sprintf("reference-integration-%d", time.Now().UnixNano()),
		Topic:          topic,
		StartOffset:    kafka.FirstOffset,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})

	procCtx, cancel := context.WithCancel(ctx)
	go func() {
		_ = consumer.NewProcessor(reader, handler).Run(procCtx)
	}()

	return &ConsumerHandle{
		Engine: eng,
		cancel: cancel,
		reader: reader,
	}, nil
}

// Stop terminates the running consumer.
func (h *ConsumerHandle) Stop() error {
	h.cancel()
	return h.reader.Close()
}

// PublishLanguageChange writes a settings.language_changed event to the topic.
func PublishLanguageChange(ctx context.Context, broker, topic, language string) error {
	return publish(ctx, broker, topic, "settings.language_changed", events.LanguageChanged{
		TenantID:   "test-tenant",
		UserID:     "test-user",
		Language:   language,
		OccurredAt: time.Now().UTC(),
	})
}

// PublishBackupImport writes a backup.imported event to the topic.
func PublishBackupImport(ctx context.Context, broker, topic string, evt events.BackupImported) error {
	return publish(ctx, broker, topic, "backup.imported", evt)
}

func publish(ctx context.Context, broker, topic, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	return writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(eventType),
		Value:   raw,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
	})
}
