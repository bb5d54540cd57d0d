package authsvc_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mkrupp/authcase/internal/domain"
	"github.com/mkrupp/authcase/internal/infra/logging"
	"github.com/mkrupp/authcase/internal/repo/user"
	"github.com/mkrupp/authcase/internal/svc/authsvc"
)

// mockUserRepository implements user.Repository for testing.
type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int64
	err    error
	m      sync.Mutex
}

var _ user.Repository = (*mockUserRepository)(nil)

func (m *mockUserRepository) CreateUser(
	_ context.Context,
	username string,
	passwordHash []byte,
	firstName string,
) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if _, exists := m.users[username]; exists {
		return nil, domain.ErrUserAlreadyExists
	}

	m.nextID++
	created := &domain.User{
		ID:           m.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		CreatedAt:    time.Now().Unix(),
	}
	m.users[username] = created

	return created, nil
}

func (m *mockUserRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, bool, error) {
	m.m.Lock()
	defer m.m.Unlock()

	if m.err != nil {
		return nil, false, m.err
	}
	account, exists := m.users[username]
	if !exists {
		return nil, false, domain.ErrUserNotFound
	}

	return account, true, nil
}

func (m *mockUserRepository) GetUserByID(_ context.Context, id int64) (*domain.User, bool, error) {
	m.m.Lock()
	defer m.m.Unlock()

	if m.err != nil {
		return nil, false, m.err
	}
	for _, account := range m.users {
		if account.ID == id {
			return account, true, nil
		}
	}

	return nil, false, domain.ErrUserNotFound
}

func (m *mockUserRepository) Close() error {
	return m.err
}

func newMockUserRepo() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

var ErrRepoError = errors.New("repository error")

func setupTestService(t *testing.T) (*authsvc.AuthService, *mockUserRepository) {
	t.Helper()

	mockRepo := newMockUserRepo()
	cfg := authsvc.AuthConfig{
		SecretKey:     "test-secret",
		TokenDuration: 3600,
	}

	svc := &authsvc.AuthService{
		Config:   cfg,
		UserRepo: mockRepo,
		Log:      logging.GetLogger("test.authsvc"),
	}

	return svc, mockRepo
}

//nolint:paralleltest
func TestAuthService_RegisterUser(t *testing.T) {
	svc, mockRepo := setupTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		repoErr  error
		wantErr  error
	}{
		{
			name:     "successful registration",
			username: "newuser",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "duplicate username",
			username: "existinguser",
			password: "password123",
			wantErr:  domain.ErrUserAlreadyExists,
		},
		{
			name:     "repository error",
			username: "erroruser",
			password: "password123",
			repoErr:  ErrRepoError,
			wantErr:  ErrRepoError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup test case
			if tt.name == "duplicate username" {
				_, _ = svc.RegisterUser(context.Background(), tt.username, "oldpass", "")
			}
			mockRepo.err = tt.repoErr

			// Execute test
			created, err := svc.RegisterUser(context.Background(), tt.username, tt.password, "John")

			// Verify results
			if (err != nil) != (tt.wantErr != nil) {
				t.Errorf("RegisterUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if created == nil || created.ID == 0 {
					t.Errorf("RegisterUser() created = %+v, want assigned id", created)
				}
				if created != nil && len(created.PasswordHash) == 0 {
					t.Error("RegisterUser() stored no password hash")
				}
			}
		})
	}
}

//nolint:paralleltest
func TestAuthService_Login(t *testing.T) {
	svc, mockRepo := setupTestService(t)

	if _, err := svc.RegisterUser(context.Background(), "testuser", "testpass123", ""); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		repoErr  error
		wantErr  error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "testpass123",
			wantErr:  nil,
		},
		{
			name:     "unknown username",
			username: "notfound",
			password: "testpass123",
			wantErr:  domain.ErrUserNotFound,
		},
		{
			name:     "incorrect password",
			username: "testuser",
			password: "wrong",
			wantErr:  domain.ErrIncorrectPassword,
		},
		{
			name:     "repository error",
			username: "testuser",
			password: "testpass123",
			repoErr:  ErrRepoError,
			wantErr:  ErrRepoError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.err = tt.repoErr

			token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if token == "" {
				t.Error("Login() returned empty token")
			}
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := setupTestService(t)

	created, err := svc.RegisterUser(context.Background(), "roundtrip", "password123", "")
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	token, err := svc.Login(context.Background(), "roundtrip", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	userID, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if userID != created.ID {
		t.Errorf("VerifyToken() userID = %d, want %d", userID, created.ID)
	}
}

func TestAuthService_ExpiredTokenFailsVerification(t *testing.T) {
	t.Parallel()

	svc, _ := setupTestService(t)
	svc.Config.TokenDuration = -1 // already expired at issuance

	if _, err := svc.RegisterUser(context.Background(), "expired", "password123", ""); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	token, err := svc.Login(context.Background(), "expired", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, err = svc.VerifyToken(context.Background(), token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}
