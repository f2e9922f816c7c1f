// Package server provides shared HTTP plumbing for the internal API: the
// bearer-token middleware and the request-scoped staff identity.
package server

import (
	"context"

	authdomain "civic-reporting/backend/internal/auth/domain"
)

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// WithIdentity returns a context carrying the authenticated staff identity.
// Handlers read it back via GetIdentity.
func WithIdentity(ctx context.Context, id *authdomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the staff identity from ctx and true if set; otherwise
// nil, false.
func GetIdentity(ctx context.Context) (*authdomain.Identity, bool) {
	v, ok := ctx.Value(identityKey).(*authdomain.Identity)
	return v, ok
}
