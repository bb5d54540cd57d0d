package user

import (
	"context"

	"github.com/mkrupp/authcase/internal/domain"
)

// Repository defines the interface for account persistence.
type Repository interface {
	// CreateUser inserts a new account and returns the stored row.
	// Username uniqueness is enforced atomically by the backing store;
	// a taken username yields ErrUserAlreadyExists.
	CreateUser(ctx context.Context, username string, passwordHash []byte, firstName string) (*domain.User, error)

	// GetUserByUsername retrieves an account by username.
	// Returns the user and true if found, or nil and false if not found.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, bool, error)

	// GetUserByID retrieves an account by its id.
	// Returns the user and true if found, or nil and false if not found.
	GetUserByID(ctx context.Context, id int64) (*domain.User, bool, error)

	// Close releases any resources held by the repository.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
