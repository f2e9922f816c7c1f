package repository

import (
	"context"

	"civic-reporting/backend/internal/ticket/domain"
)

// Repository defines persistence for tickets.
type Repository interface {
	// InsertIfAbsent persists the ticket keyed by its ID. Inserting an ID
	// that already exists is a no-op, not an error; this is what makes log
	// redelivery safe.
	InsertIfAbsent(ctx context.Context, t *domain.Ticket) error
	// GetByID returns the ticket for id, or nil if not found.
	// It returns an error only for database failures, not for missing rows.
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// ListAll returns all tickets ordered by creation timestamp descending.
	ListAll(ctx context.Context) ([]*domain.Ticket, error)
}
