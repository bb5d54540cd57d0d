package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkrupp/authcase/internal/domain"
	"github.com/mkrupp/authcase/internal/infra/logging"
	"github.com/mkrupp/authcase/internal/repo/user"
)

// AuthConfig contains configuration parameters for the authentication service.
type AuthConfig struct {
	// SecretKey is the process-wide HMAC secret used to sign bearer tokens.
	// Rotating it invalidates all outstanding tokens.
	SecretKey string `env:"SECRET_KEY" default:"super_ultra_secret"`

	// TokenDuration is the validity duration of auth tokens in seconds
	TokenDuration int64 `env:"TOKEN_DURATION" default:"3600"` // 1h
}

// AuthService provides account registration, credential verification, and
// bearer token issuance/verification.
type AuthService struct {
	Config   AuthConfig
	UserRepo user.Repository
	Log      logging.Logger
}

// NewAuthService creates a new AuthService with the given user repository
// factory and configuration. Returns an error if the user repository cannot
// be created.
func NewAuthService(repoFactory user.RepositoryFactory, cfg AuthConfig) (*AuthService, error) {
	log := logging.GetLogger("svc.authsvc.auth_service")

	userRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new user repo: %w", err)
	}

	return &AuthService{
		Config:   cfg,
		UserRepo: userRepo,
		Log:      log,
	}, nil
}

// RegisterUser creates a new account with the given username, password, and
// optional first name. The password is bcrypt-hashed before storage; the
// plaintext is never persisted or logged.
// Returns domain.ErrUserAlreadyExists if the username is taken.
func (s *AuthService) RegisterUser(
	ctx context.Context,
	username, password, firstName string,
) (_ *domain.User, err error) {
	log := s.Log.With(logging.Group("user", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "register user failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}()

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.UserRepo.CreateUser(ctx, username, passwordHash, firstName)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// Login verifies the credentials and issues a signed bearer token embedding
// the account id. Unknown usernames yield domain.ErrUserNotFound; a hash
// mismatch yields domain.ErrIncorrectPassword.
func (s *AuthService) Login(ctx context.Context, username, password string) (_ string, err error) {
	log := s.Log.With(logging.Group("user", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}()

	account, ok, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}

		return "", fmt.Errorf("get user: %w", err)
	} else if !ok {
		return "", domain.ErrUserNotFound
	}

	if !CheckPassword(password, account.PasswordHash) {
		return "", domain.ErrIncorrectPassword
	}

	token, err := IssueToken(account.ID, []byte(s.Config.SecretKey), s.tokenValidity())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// VerifyToken validates a bearer token and returns the embedded user id.
// Verification is a pure computation over the token, the clock, and the
// process-wide secret; it is safe to call concurrently.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (userID int64, err error) {
	log := s.Log

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "verify token failed", "error", err)
		} else {
			log.DebugContext(ctx, "token verified", "user_id", userID)
		}
	}()

	return VerifyToken(tokenString, []byte(s.Config.SecretKey))
}

func (s *AuthService) tokenValidity() time.Duration {
	return time.Duration(s.Config.TokenDuration * int64(time.Second))
}

// Close releases resources held by the service, such as database connections.
// Returns an error if cleanup fails.
func (s *AuthService) Close() error {
	if err := s.UserRepo.Close(); err != nil {
		return fmt.Errorf("close user repo: %w", err)
	}

	return nil
}
