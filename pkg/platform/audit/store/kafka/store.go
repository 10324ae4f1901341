// Package kafka publishes audit events to a Kafka topic as JSON, keyed by
// the masked registration so events for one student stay ordered.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"carteira/internal/platform/kafka/producer"
	audit "carteira/pkg/platform/audit"
)

// Producer is the subset of the Kafka producer the sink needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Store implements audit.Store on top of a Kafka producer.
type Store struct {
	producer Producer
	topic    string
}

func New(p Producer, topic string) *Store {
	return &Store{producer: p, topic: topic}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	msg := &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.Registration),
		Value: payload,
		Headers: map[string]string{
			"event_id":   event.ID.String(),
			"action":     event.Action,
			"request_id": event.RequestID,
		},
	}
	if err := s.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
