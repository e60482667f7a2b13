package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/lorf543/payroll-sub000/internal/messaging/kafka"
)

// publishEvent writes one outbox row to its topic. The aggregate ID is
// the message key, so events for the same work day land on the same
// partition and consumers see them in order.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
