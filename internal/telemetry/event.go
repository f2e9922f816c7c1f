// Package telemetry defines pipeline lifecycle events and the emitter
// interface used to export them.
package telemetry

import (
	"context"
	"time"
)

// Event types emitted by the ticket pipeline.
const (
	EventTicketPublished    = "ticket_published"
	EventTicketPersisted    = "ticket_persisted"
	EventSubmissionRejected = "submission_rejected"
	EventGeocodeUnavailable = "geocode_unavailable"
)

// Event is a single pipeline lifecycle event.
type Event struct {
	// TicketID is set for events tied to a specific ticket.
	TicketID string
	// EventType is one of the Event* constants.
	EventType string
	// Source names the emitting component (e.g. "ingest", "consumer").
	Source string
	// Detail is an optional human-readable annotation (e.g. rejection reason).
	Detail string
	// Area is the resolved area, when known.
	Area string
	// CreatedAt is the event time; Emit sets it to now when zero.
	CreatedAt time.Time
}

// EventEmitter emits pipeline events. Callers use it best-effort: log and
// ignore errors.
type EventEmitter interface {
	// Emit sends a single event. Implementations may block briefly; use
	// EmitAsync from request handlers.
	Emit(ctx context.Context, event *Event) error
}
