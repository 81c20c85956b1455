// Package kafkax publishes outbox events to Kafka. Messages are keyed by
// order id so every event of one order lands in the same partition and
// consumers observe its lifecycle in order.
package kafkax

import (
	"context"
	"encoding/json"
	"time"

	"distribution/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.EventPublisher on a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to the given topic on the broker
// at addr (host:port).
func NewPublisher(addr, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(addr),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// eventEnvelope is the wire shape of one published event.
type eventEnvelope struct {
	EventID    string          `json:"event_id"`
	TenantID   string          `json:"tenant_id"`
	OrderID    string          `json:"order_id"`
	Kind       string          `json:"kind"`
	Recipients []string        `json:"recipients"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Publish writes one event to the topic, keyed by order id. It blocks until
// the broker acknowledges the write or ctx is done.
func (p *Publisher) Publish(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(eventEnvelope{
		EventID:    event.ID().String(),
		TenantID:   event.TenantID().String(),
		OrderID:    event.OrderID().String(),
		Kind:       event.Kind().String(),
		Recipients: event.Recipients(),
		Payload:    event.Payload(),
		CreatedAt:  event.CreatedAt(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID().String()),
		Value: value,
	})
}

// Close flushes pending messages and releases the writer's resources.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
