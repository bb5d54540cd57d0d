package domain

import "errors"

var (
	// ErrNoAuthToken is returned when an authentication token is required but not provided.
	ErrNoAuthToken = errors.New("no auth token")
	// ErrTokenExpired is returned when a token's expiry timestamp has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidAuthToken is returned when a token is malformed or its signature is invalid.
	ErrInvalidAuthToken = errors.New("invalid auth token")
)

// TokenResponse is the login success payload carrying the bearer token.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SignupResponse is the registration success payload echoing the username.
type SignupResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries one message per missing required field,
// keyed by the wire name of the field.
type ValidationResponse struct {
	Errors map[string]string `json:"errors"`
}

// UserResponse describes an account on protected routes.
type UserResponse struct {
	ID        int64  `json:"id"`
	User      string `json:"user"`
	FirstName string `json:"first_name,omitempty"`
}
