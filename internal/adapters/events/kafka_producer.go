// Package events announces rate and preference changes to sibling ERP
// services over Kafka. Publishing is fire-and-forget: a broker outage is
// logged and otherwise ignored.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaProducer implements ports.EventPublisher with franz-go.
type KafkaProducer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaProducer connects to the given brokers and produces onto topic.
func NewKafkaProducer(brokers []string, topic string, logger *slog.Logger) (*KafkaProducer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaProducer{client: client, topic: topic, logger: logger}, nil
}

// envelope is the wire shape of every event on the topic.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publish produces an event asynchronously, keyed so events about the same
// subject stay ordered within a partition.
func (p *KafkaProducer) Publish(event string, key string, payload any) {
	value, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		p.logger.Warn("failed to encode event payload",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
		return
	}

	record := &kgo.Record{Topic: p.topic, Key: []byte(key), Value: value}
	p.client.Produce(context.Background(), record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("failed to publish event",
				slog.String("event", event),
				slog.String("error", err.Error()),
			)
		}
	})
}

// Close flushes and releases the underlying client.
func (p *KafkaProducer) Close() {
	p.client.Close()
}
