package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkrupp/authcase/internal/domain"
	context_ "github.com/mkrupp/authcase/internal/infra/context"
	"github.com/mkrupp/authcase/internal/infra/logging"
)

// TokenVerifier checks a bearer token and returns the embedded user id.
// Expired tokens are reported as domain.ErrTokenExpired, any other
// signature or format problem as domain.ErrInvalidAuthToken.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (int64, error)
}

// UserResolver loads the account a verified token refers to.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, bool, error)
}

// AuthorizingMiddleware creates middleware that gates protected handlers
// behind bearer-token verification. The token is read from the raw
// Authorization header (no "Bearer " prefix is assumed). On success the
// token's user id is resolved via the resolver and the identity is added to
// the request context; the resolved user may be nil if the account has since
// disappeared, which is deliberately left to the wrapped handler.
func AuthorizingMiddleware(
	next http.Handler,
	verifier TokenVerifier,
	resolver UserResolver,
	log logging.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			log.WarnContext(r.Context(), "no token provided", "error", domain.ErrNoAuthToken)
			writeGuardError(w, "Token is missing")

			return
		}

		userID, err := verifier.VerifyToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				log.WarnContext(r.Context(), "token expired", "error", err)
				writeGuardError(w, "Token has expired")
			default:
				log.WarnContext(r.Context(), "invalid token", "error", err)
				writeGuardError(w, "Token is invalid")
			}

			return
		}

		identity := context_.Identity{UserID: userID}

		account, ok, err := resolver.GetUserByID(r.Context(), userID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			log.ErrorContext(r.Context(), "resolve user failed", "error", err)
			writeGuardError(w, "Token verification failed")

			return
		} else if ok {
			identity.User = account
		}

		next.ServeHTTP(w, r.WithContext(context_.WithIdentity(r.Context(), identity)))
	})
}

func writeGuardError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: message})
}
