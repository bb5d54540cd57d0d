package domain

import "errors"

var (
	// ErrUserAlreadyExists is returned when trying to create a user with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when looking up a non-existent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword is returned when a password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// User represents a registered account.
type User struct {
	ID           int64  // Unique identifier, assigned on insert
	Username     string // Login username, unique
	PasswordHash []byte // bcrypt digest of the password
	FirstName    string // Optional display name
	CreatedAt    int64  // Unix timestamp of account creation
}
