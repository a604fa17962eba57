// Package notify publishes outbox events to the notification broker.
// Downstream consumers (SMS gateway, mailer, partner webhooks) subscribe to
// the topic and fan out; this side only guarantees the event leaves the
// outbox exactly as it was recorded.
package notify

import (
	"context"

	"freight/internal/core/domain/model/outbox"

	skafka "github.com/segmentio/kafka-go"
)

// Writer defines the subset of the kafka writer the publisher needs.
// This makes the publisher testable without a broker.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// KafkaPublisher is a thin wrapper around a kafka writer implementing the
// NotificationPublisher port.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher creates a publisher that writes to the provided broker and topic.
func NewKafkaPublisher(brokerURL, topic string) *KafkaPublisher {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: w}
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes one outbox event to the broker. The event type travels as
// the message key so consumers can filter without decoding the payload.
func (p *KafkaPublisher) Publish(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	msg := skafka.Message{
		Key:   []byte(event.EventType()),
		Value: []byte(event.Payload()),
		Headers: []skafka.Header{
			{Key: "eventId", Value: []byte(event.ID().String())},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
