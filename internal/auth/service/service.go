package service

import (
	"errors"
	"time"

	authdomain "civic-reporting/backend/internal/auth/domain"
	"civic-reporting/backend/internal/security"
)

// Sentinel errors for the auth service; the handler maps them to HTTP codes.
var (
	ErrInvalidRole      = errors.New("valid role (OFFICER or SUPERVISOR) required")
	ErrMissingToken     = errors.New("missing authorization token")
	ErrInvalidOrExpired = errors.New("invalid or expired token")
)

// defaultEmployeeID is used when a login request carries no employee id.
const defaultEmployeeID = "demo"

// LoginResult holds the outcome of Login.
type LoginResult struct {
	Token     string
	Role      authdomain.Role
	ExpiresAt time.Time
}

// Service issues and verifies staff access tokens.
type Service struct {
	tokens *security.TokenProvider
}

// NewService returns a Service signing with the given token provider.
func NewService(tokens *security.TokenProvider) *Service {
	return &Service{tokens: tokens}
}

// Login issues a token for the given role. employeeID may be empty, in which
// case a demo id is used. Returns ErrInvalidRole for an unknown role.
func (s *Service) Login(role, employeeID string) (*LoginResult, error) {
	r, ok := authdomain.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}
	if employeeID == "" {
		employeeID = defaultEmployeeID
	}
	token, expiresAt, err := s.tokens.Issue(string(r), employeeID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: r, ExpiresAt: expiresAt}, nil
}

// Verify validates a bearer token and returns the staff identity it carries.
// Returns ErrMissingToken for an empty token, ErrInvalidOrExpired when the
// token fails validation, and ErrInvalidRole when the role claim names no
// known role.
func (s *Service) Verify(token string) (*authdomain.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	role, employeeID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidOrExpired
	}
	r, ok := authdomain.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}
	return &authdomain.Identity{Role: r, EmployeeID: employeeID}, nil
}
