package service

import (
	"context"
	"errors"
	"fmt"

	authdomain "civic-reporting/backend/internal/auth/domain"
	"civic-reporting/backend/internal/authz"
	"civic-reporting/backend/internal/ticket/domain"
)

// Sentinel errors for the query service; the handler maps them to HTTP codes.
var (
	ErrForbidden = errors.New("role not permitted to read tickets")
	ErrNotFound  = errors.New("ticket not found")
)

// Summary is the redacted ticket view served to officers. Reporter identity
// and contact details are withheld.
type Summary struct {
	ID        string `json:"id"`
	Concern   string `json:"concern"`
	Area      string `json:"area"`
	Timestamp int64  `json:"timestamp"`
}

// TicketPage is the list response: either summaries or full records, with the
// scope that produced it.
type TicketPage struct {
	Scope     string
	Summaries []Summary
	Tickets   []*domain.Ticket
}

// TicketView is the single-ticket response.
type TicketView struct {
	Scope   string
	Summary *Summary
	Ticket  *domain.Ticket
}

// Authorizer decides read access and projection scope for an identity.
type Authorizer interface {
	Authorize(ctx context.Context, id *authdomain.Identity) (authz.Decision, error)
}

// TicketRepo is the minimal ticket repository needed by the query service.
type TicketRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]*domain.Ticket, error)
}

// QueryService serves role-scoped ticket reads for staff.
type QueryService struct {
	repo  TicketRepo
	authz Authorizer
}

// NewQueryService returns a QueryService with the given dependencies.
func NewQueryService(repo TicketRepo, authorizer Authorizer) *QueryService {
	return &QueryService{repo: repo, authz: authorizer}
}

// List returns all tickets, newest first, projected per the identity's scope.
// Returns ErrForbidden when the policy denies the role.
func (s *QueryService) List(ctx context.Context, id *authdomain.Identity) (*TicketPage, error) {
	scope, err := s.scopeFor(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	page := &TicketPage{Scope: scope}
	if scope == authz.ScopeFull {
		// Never nil: an empty store must encode as [] on the wire.
		page.Tickets = tickets
		if page.Tickets == nil {
			page.Tickets = []*domain.Ticket{}
		}
		return page, nil
	}
	page.Summaries = make([]Summary, 0, len(tickets))
	for _, t := range tickets {
		page.Summaries = append(page.Summaries, summarize(t))
	}
	return page, nil
}

// Get returns one ticket by id, projected per the identity's scope.
// Returns ErrNotFound when no ticket has that id.
func (s *QueryService) Get(ctx context.Context, id *authdomain.Identity, ticketID string) (*TicketView, error) {
	scope, err := s.scopeFor(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("get ticket %s: %w", ticketID, err)
	}
	if t == nil {
		return nil, ErrNotFound
	}
	view := &TicketView{Scope: scope}
	if scope == authz.ScopeFull {
		view.Ticket = t
		return view, nil
	}
	sum := summarize(t)
	view.Summary = &sum
	return view, nil
}

func (s *QueryService) scopeFor(ctx context.Context, id *authdomain.Identity) (string, error) {
	d, err := s.authz.Authorize(ctx, id)
	if err != nil {
		return "", fmt.Errorf("authorize: %w", err)
	}
	if !d.Allowed {
		return "", ErrForbidden
	}
	return d.Scope, nil
}

func summarize(t *domain.Ticket) Summary {
	return Summary{
		ID:        t.ID,
		Concern:   t.Concern,
		Area:      t.Area,
		Timestamp: t.Timestamp,
	}
}
