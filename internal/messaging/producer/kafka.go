package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"civic-reporting/backend/internal/ticket/domain"
)

// KafkaProducer implements Producer using segmentio/kafka-go.
type KafkaProducer struct {
	writer *kafka.Writer
	logger *log.Logger
	topic  string
}

// NewKafkaProducer creates a Kafka producer that appends tickets to the given
// topic. Writes are synchronous and require acknowledgement from all in-sync
// replicas, so Publish errors reliably indicate a non-durable append. Call
// Close when shutting down.
func NewKafkaProducer(brokers []string, topic string, logger *log.Logger) (*KafkaProducer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, errors.New("kafka producer configuration incomplete: brokers and topic are required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Printf("kafka writer: "+msg, args...)
		}),
	}
	logger.Printf("kafka producer ready, brokers=%v topic=%s", brokers, topic)
	return &KafkaProducer{writer: w, logger: logger, topic: topic}, nil
}

// Publish serializes the ticket as JSON and writes it as a single log entry,
// keyed by ticket ID.
func (p *KafkaProducer) Publish(ctx context.Context, t *domain.Ticket) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("serialize ticket %s: %w", t.ID, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(t.ID),
		Value: payload,
	})
	if err != nil {
		p.logger.Printf("kafka publish failed (ticket %s): %v", t.ID, err)
		return fmt.Errorf("append ticket %s to log: %w", t.ID, err)
	}
	return nil
}

// Close closes the Kafka writer, flushing any buffered messages.
func (p *KafkaProducer) Close() error {
	p.logger.Println("closing kafka producer...")
	return p.writer.Close()
}

var _ Producer = (*KafkaProducer)(nil)
