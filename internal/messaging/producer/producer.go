// Package producer defines the durable log append side of the ticket pipeline.
package producer

import (
	"context"

	"civic-reporting/backend/internal/ticket/domain"
)

// Producer appends tickets to the durable log.
type Producer interface {
	// Publish appends a single ticket as one log entry. It returns only after
	// the log has acknowledged the append; an error means the entry is not
	// durable and the caller must surface the failure.
	Publish(ctx context.Context, t *domain.Ticket) error

	// Close flushes and closes the producer connection.
	Close() error
}
