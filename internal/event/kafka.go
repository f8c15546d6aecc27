package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaEmitter implements Emitter using segmentio/kafka-go.
type KafkaEmitter struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaEmitter creates a Kafka emitter that writes listing events to the given topic.
// Returns nil (emission disabled) when brokers or topic are unset. Call Close when shutting down.
func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaEmitter{writer: writer, topic: topic}
}

// Emit serializes the event as JSON and writes it to the Kafka topic, keyed
// by listing id so per-listing ordering is preserved.
func (p *KafkaEmitter) Emit(ctx context.Context, e *Event) error {
	if p == nil || p.writer == nil || e == nil {
		return nil
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(e.ListingID),
		Value: payload,
	})
}

// Close closes the Kafka writer. Safe to call multiple times and on nil.
func (p *KafkaEmitter) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
