// Package consumer defines the durable log read side of the ticket pipeline.
package consumer

import (
	"context"

	"civic-reporting/backend/internal/ticket/domain"
)

// Consumer reads tickets from the durable log. Delivery is at-least-once: an
// entry may be redelivered until its acknowledgement is committed, so callers
// must persist idempotently.
type Consumer interface {
	// Fetch blocks until a log entry is available or the context is cancelled.
	// It returns the entry's ticket and an acknowledgement callback:
	// ack(true) commits the cursor past this entry; ack(false) leaves the
	// cursor in place so the entry is redelivered.
	//
	// An entry whose payload cannot be deserialized is committed and reported
	// as an error, so a poison entry cannot wedge the loop.
	Fetch(ctx context.Context) (t *domain.Ticket, ack func(success bool), err error)

	// Close gracefully shuts down the consumer connection.
	Close() error
}
