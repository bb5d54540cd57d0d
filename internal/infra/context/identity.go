package context

import (
	"context"

	"github.com/mkrupp/authcase/internal/domain"
)

const contextKeyIdentity = contextKey("identity")

// Identity is the authenticated caller resolved by the access guard.
// User may be nil when the token's user id no longer resolves to a stored
// account; downstream handlers decide how to treat that.
type Identity struct {
	UserID int64
	User   *domain.User
}

// IdentityFromContext extracts the authenticated identity from the context.
// Returns the identity and true if present, or a zero identity and false if
// the request did not pass through the access guard.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKeyIdentity).(Identity)

	return identity, ok
}

// WithIdentity creates a new context carrying the given identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, identity)
}
