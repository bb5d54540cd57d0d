package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkrupp/authcase/internal/domain"
	context_ "github.com/mkrupp/authcase/internal/infra/context"
	"github.com/mkrupp/authcase/internal/infra/logging"
	http_ "github.com/mkrupp/authcase/internal/infra/transport/http"
)

type fakeVerifier struct {
	userID int64
	err    error
}

func (f *fakeVerifier) VerifyToken(_ context.Context, _ string) (int64, error) {
	return f.userID, f.err
}

type fakeResolver struct {
	user *domain.User
	err  error
}

func (f *fakeResolver) GetUserByID(_ context.Context, _ int64) (*domain.User, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.user == nil {
		return nil, false, domain.ErrUserNotFound
	}

	return f.user, true, nil
}

var errStore = errors.New("store failure")

func TestAuthorizingMiddleware(t *testing.T) {
	t.Parallel()

	testUser := &domain.User{ID: 42, Username: "guarded"}

	tests := []struct {
		name         string
		token        string
		verifier     *fakeVerifier
		resolver     *fakeResolver
		wantStatus   int
		wantError    string
		wantIdentity bool
		wantUser     *domain.User
	}{
		{
			name:       "missing token",
			token:      "",
			verifier:   &fakeVerifier{},
			resolver:   &fakeResolver{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token is missing",
		},
		{
			name:       "expired token",
			token:      "some-token",
			verifier:   &fakeVerifier{err: domain.ErrTokenExpired},
			resolver:   &fakeResolver{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token has expired",
		},
		{
			name:       "invalid token",
			token:      "some-token",
			verifier:   &fakeVerifier{err: domain.ErrInvalidAuthToken},
			resolver:   &fakeResolver{},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token is invalid",
		},
		{
			name:       "store failure",
			token:      "some-token",
			verifier:   &fakeVerifier{userID: 42},
			resolver:   &fakeResolver{err: errStore},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Token verification failed",
		},
		{
			name:         "valid token with resolvable user",
			token:        "some-token",
			verifier:     &fakeVerifier{userID: 42},
			resolver:     &fakeResolver{user: testUser},
			wantStatus:   http.StatusOK,
			wantIdentity: true,
			wantUser:     testUser,
		},
		{
			name:         "valid token for vanished user passes nil user through",
			token:        "some-token",
			verifier:     &fakeVerifier{userID: 42},
			resolver:     &fakeResolver{},
			wantStatus:   http.StatusOK,
			wantIdentity: true,
			wantUser:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				gotIdentity context_.Identity
				gotOK       bool
			)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, gotOK = context_.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := http_.AuthorizingMiddleware(
				next,
				tt.verifier,
				tt.resolver,
				logging.GetLogger("test.middleware"),
			)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantError != "" {
				var resp domain.ErrorResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp.Error != tt.wantError {
					t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
				}
			}

			if gotOK != tt.wantIdentity {
				t.Fatalf("identity in context = %v, want %v", gotOK, tt.wantIdentity)
			}
			if tt.wantIdentity {
				if gotIdentity.UserID != tt.verifier.userID {
					t.Errorf("identity.UserID = %d, want %d", gotIdentity.UserID, tt.verifier.userID)
				}
				if gotIdentity.User != tt.wantUser {
					t.Errorf("identity.User = %v, want %v", gotIdentity.User, tt.wantUser)
				}
			}
		})
	}
}
