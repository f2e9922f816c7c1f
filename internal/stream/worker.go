// Package stream runs the background loop that drains the durable ticket log
// into the store.
package stream

import (
	"context"
	"errors"
	"log"
	"time"

	"civic-reporting/backend/internal/messaging/consumer"
	"civic-reporting/backend/internal/telemetry"
	"civic-reporting/backend/internal/ticket/domain"
)

// errPause is how long the loop pauses after a read or processing error
// before resuming.
const errPause = time.Second

// Store is the minimal ticket persistence needed by the worker.
type Store interface {
	InsertIfAbsent(ctx context.Context, t *domain.Ticket) error
}

// Worker consumes the ticket log and persists each entry idempotently.
// Delivery is at-least-once: after a crash the uncommitted tail of the log is
// redelivered, and InsertIfAbsent makes the replay harmless.
type Worker struct {
	consumer consumer.Consumer
	store    Store
	logger   *log.Logger
	emitter  telemetry.EventEmitter
	pause    time.Duration
}

// New returns a Worker reading from c and writing to s. emitter may be nil.
func New(c consumer.Consumer, s Store, logger *log.Logger, emitter telemetry.EventEmitter) *Worker {
	return &Worker{
		consumer: c,
		store:    s,
		logger:   logger,
		emitter:  emitter,
		pause:    errPause,
	}
}

// Run loops until ctx is cancelled. Errors never terminate the loop: they are
// logged, the loop pauses briefly, and consumption resumes. The log cursor is
// only committed once an entry has been persisted, so a failed insert leads
// to redelivery rather than loss.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Println("stream consumer started")
	for {
		if ctx.Err() != nil {
			w.logger.Println("stream consumer stopped")
			return
		}

		t, ack, err := w.consumer.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				w.logger.Println("stream consumer stopped")
				return
			}
			w.logger.Printf("stream consumer: fetch: %v", err)
			w.sleep(ctx)
			continue
		}

		if err := w.store.InsertIfAbsent(ctx, t); err != nil {
			w.logger.Printf("stream consumer: persist ticket %s: %v", t.ID, err)
			ack(false)
			w.sleep(ctx)
			continue
		}
		ack(true)
		telemetry.EmitAsync(w.emitter, ctx, &telemetry.Event{
			TicketID:  t.ID,
			EventType: telemetry.EventTicketPersisted,
			Source:    "consumer",
			Area:      t.Area,
		})
	}
}

func (w *Worker) sleep(ctx context.Context) {
	t := time.NewTimer(w.pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
