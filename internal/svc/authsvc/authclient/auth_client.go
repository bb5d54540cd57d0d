package authclient

import "context"

// AuthClient defines the client-side interface to the authentication service.
type AuthClient interface {
	// SignUp registers a new account. firstName may be empty.
	// Returns the username echoed by the service.
	SignUp(ctx context.Context, username, password, firstName string) (string, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// Me fetches the account the given token resolves to.
	// Returns the user id, the username, and any error encountered.
	Me(ctx context.Context, token string) (int64, string, error)
}
