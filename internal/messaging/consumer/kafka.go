package consumer

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

// fetchMaxWait bounds how long an empty fetch blocks before returning to the
// caller's loop.
const fetchMaxWait = 5 * time.Second

// KafkaConsumer implements Consumer over a Kafka consumer group. Offsets are
// committed explicitly through the ack callback, never on a timer, so the
// cursor only advances past an entry once the caller has persisted it.
type KafkaConsumer struct {
	reader *kafka.Reader
	logger *log.Logger
}

// NewKafkaConsumer creates a consumer group reader for the ticket topic.
// A new group starts from the earliest retained entry, so a consumer that was
// down does not skip the backlog appended in the meantime.
func NewKafkaConsumer(brokers []string, topic, groupID string, logger *log.Logger) (*KafkaConsumer, error) {
	if len(brokers) == 0 || topic == "" || groupID == "" {
		return nil, errors.New("kafka consumer configuration incomplete: brokers, topic, and group id are required")
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
		MaxWait:     fetchMaxWait,
		StartOffset: kafka.FirstOffset,
	})
	logger.Printf("kafka consumer ready, brokers=%v topic=%s group=%s", brokers, topic, groupID)
	return &KafkaConsumer{reader: r, logger: logger}, nil
}

// Fetch reads the next log entry and deserializes its ticket payload.
func (k *KafkaConsumer) Fetch(ctx context.Context) (*domain.Ticket, func(success bool), error) {
	msg, err := k.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, nil, ctx.Err()
		}
		return nil, nil, err
	}

	var t domain.Ticket
	if err := json.Unmarshal(msg.Value, &t); err != nil {
		// Commit so the malformed entry is not redelivered forever.
		if cErr := k.reader.CommitMessages(context.Background(), msg); cErr != nil {
			k.logger.Printf("kafka consumer: commit after bad payload (offset %d): %v", msg.Offset, cErr)
		}
		return nil, nil, fmt.Errorf("deserialize log entry at offset %d: %w", msg.Offset, err)
	}

	ack := func(success bool) {
		if !success {
			k.logger.Printf("kafka consumer: offset %d not committed (ticket %s), entry will be redelivered", msg.Offset, t.ID)
			return
		}
		if err := k.reader.CommitMessages(context.Background(), msg); err != nil {
			k.logger.Printf("kafka consumer: commit offset %d failed: %v", msg.Offset, err)
		}
	}
	return &t, ack, nil
}

// Close closes the Kafka reader.
func (k *KafkaConsumer) Close() error {
	k.logger.Println("closing kafka consumer...")
	return k.reader.Close()
}

var _ Consumer = (*KafkaConsumer)(nil)
