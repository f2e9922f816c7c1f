// Package service implements the public submission pipeline: validate,
// geocode, classify against the city boundary, and publish to the ticket log.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"civic-reporting/backend/internal/boundary"
	"civic-reporting/backend/internal/messaging/producer"
	"civic-reporting/backend/internal/telemetry"
	"civic-reporting/backend/internal/ticket/domain"
)

// Sentinel errors for the submission pipeline; the handler maps them to HTTP
// codes. Validation failures surface as *domain.ValidationError instead.
var (
	ErrGeocodeUnavailable = errors.New("location validation service unavailable")
	ErrOutsideBoundary    = errors.New("location outside city limits")
	ErrPublishFailure     = errors.New("ticket log publish failed")
)

// Geocoder resolves coordinates to an address field map.
type Geocoder interface {
	Resolve(ctx context.Context, lat, lng float64) (map[string]string, error)
}

// Publisher assembles the canonical ticket and appends it to the durable log.
// Identifier and timestamp are assigned here, once, at publish time.
type Publisher struct {
	producer producer.Producer

	// overridable in tests
	newID func() string
	nowMS func() int64
}

// NewPublisher returns a Publisher appending through prod.
func NewPublisher(prod producer.Producer) *Publisher {
	return &Publisher{
		producer: prod,
		newID:    func() string { return uuid.New().String() },
		nowMS:    func() int64 { return time.Now().UTC().UnixMilli() },
	}
}

// Publish builds the ticket from the validated submission and resolved area
// and appends it as one log entry. On append failure the returned error wraps
// ErrPublishFailure; the entry is not durable and no record will exist.
func (p *Publisher) Publish(ctx context.Context, sub *domain.Submission, area string) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		ID:        p.newID(),
		Concern:   sub.Concern,
		Notes:     sub.Notes,
		UserName:  sub.UserName,
		Contact:   sub.Contact,
		Lat:       sub.Lat,
		Lng:       sub.Lng,
		Area:      area,
		Timestamp: p.nowMS(),
	}
	if err := p.producer.Publish(ctx, ticket); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailure, err)
	}
	return ticket, nil
}

// Service runs a submission through the full ingestion pipeline.
type Service struct {
	geocoder  Geocoder
	publisher *Publisher
	cityName  string
	aliases   []string
	logger    *log.Logger
	emitter   telemetry.EventEmitter
}

// New returns a Service classifying against cityName with the given aliases.
// emitter may be nil.
func New(geocoder Geocoder, prod producer.Producer, cityName string, aliases []string, logger *log.Logger, emitter telemetry.EventEmitter) *Service {
	return &Service{
		geocoder:  geocoder,
		publisher: NewPublisher(prod),
		cityName:  cityName,
		aliases:   aliases,
		logger:    logger,
		emitter:   emitter,
	}
}

// Submit validates sub, resolves and classifies its location, and publishes
// the resulting ticket to the durable log. On success the returned ticket
// carries its assigned ID, resolved area, and publish timestamp.
//
// Failure modes, in pipeline order:
//   - *domain.ValidationError: a field failed structural validation
//   - ErrGeocodeUnavailable: reverse geocoding exhausted its retries
//   - ErrOutsideBoundary: the location is not within the served city
//   - ErrPublishFailure: the ticket was built but could not be published
func (s *Service) Submit(ctx context.Context, sub *domain.Submission) (*domain.Ticket, error) {
	if err := sub.Validate(); err != nil {
		telemetry.EmitAsync(s.emitter, ctx, &telemetry.Event{
			EventType: telemetry.EventSubmissionRejected,
			Source:    "ingest",
			Detail:    err.Error(),
		})
		return nil, err
	}

	address, err := s.geocoder.Resolve(ctx, sub.Lat, sub.Lng)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Printf("ingest: geocoding failed: lat=%v lng=%v: %v", sub.Lat, sub.Lng, err)
		telemetry.EmitAsync(s.emitter, ctx, &telemetry.Event{
			EventType: telemetry.EventGeocodeUnavailable,
			Source:    "ingest",
			Detail:    err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}

	if !boundary.WithinCity(address, s.aliases) {
		s.logger.Printf("ingest: submission rejected, outside %s: lat=%v lng=%v", s.cityName, sub.Lat, sub.Lng)
		telemetry.EmitAsync(s.emitter, ctx, &telemetry.Event{
			EventType: telemetry.EventSubmissionRejected,
			Source:    "ingest",
			Detail:    "outside city boundary",
		})
		return nil, ErrOutsideBoundary
	}

	ticket, err := s.publisher.Publish(ctx, sub, boundary.ResolveArea(address))
	if err != nil {
		s.logger.Printf("ingest: publish failed: %v", err)
		return nil, err
	}

	s.logger.Printf("ingest: ticket created: %s area=%q", ticket.ID, ticket.Area)
	telemetry.EmitAsync(s.emitter, ctx, &telemetry.Event{
		TicketID:  ticket.ID,
		EventType: telemetry.EventTicketPublished,
		Source:    "ingest",
		Area:      ticket.Area,
	})
	return ticket, nil
}

// CityName returns the city this service classifies against.
func (s *Service) CityName() string { return s.cityName }
