package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/mkrupp/authcase/internal/domain"
	context_ "github.com/mkrupp/authcase/internal/infra/context"
	"github.com/mkrupp/authcase/internal/infra/logging"
	http_ "github.com/mkrupp/authcase/internal/infra/transport/http"
)

var (
	// ErrMissingFields is returned when required request fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrBadRequestBody is returned when the request body is not valid JSON.
	ErrBadRequestBody = errors.New("bad request body")
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// HTTPTransport handles HTTP requests for the authentication service.
// It provides endpoints for user registration, login, and the authenticated
// account view.
type HTTPTransport struct {
	authSvc *AuthService
	log     logging.Logger
	cfg     HTTPTransportConfig
}

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
// It requires an AuthService for handling authentication operations.
func NewHTTPTransport(
	authSvc *AuthService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	return &HTTPTransport{
		authSvc: authSvc,
		log:     logging.GetLogger("svc.authsvc.http_transport"),
		cfg:     cfg,
	}
}

// ServeHTTP implements http.Handler and sets up routes for the auth service endpoints:
// - POST /auth/sign-up: Register a new user
// - POST /auth/login: Login and get a bearer token
// - GET /auth/me: Current account, guarded by the access middleware.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/sign-up", ht.HandleSignUp)
	mux.HandleFunc("POST /auth/login", ht.HandleLogin)
	mux.Handle("GET /auth/me", http_.AuthorizingMiddleware(
		http.HandlerFunc(ht.HandleMe),
		ht.authSvc,
		ht.authSvc.UserRepo,
		ht.log,
	))
	mux.ServeHTTP(w, r)
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

type signUpRequest struct {
	User      *string `json:"user"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
}

type loginRequest struct {
	User     *string `json:"user"`
	Password *string `json:"password"`
}

// HandleSignUp processes user registration requests.
// Expects a JSON body with fields: user, password, first_name (optional).
func (ht *HTTPTransport) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleSignUp(w, r)
}

func (ht *HTTPTransport) handleSignUp(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "user sign-up failed", "error", err)
		} else {
			log.DebugContext(ctx, "user signed up")
		}
	}(r.Context())

	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))

		return errors.Join(ErrBadRequestBody, err)
	}

	// Every missing required field is collected before responding.
	if fieldErrors := requireFields(
		requiredField{"user", req.User},
		requiredField{"password", req.Password},
	); len(fieldErrors.Errors) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors)

		return ErrMissingFields
	}

	log = log.With(logging.Group("user", "username", *req.User))

	var firstName string
	if req.FirstName != nil {
		firstName = *req.FirstName
	}

	created, err := ht.authSvc.RegisterUser(r.Context(), *req.User, *req.Password, firstName)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			writeError(w, http.StatusBadRequest, "This user already exists")
		} else {
			writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}

		return fmt.Errorf("register user: %w", err)
	}

	writeJSON(w, http.StatusOK, domain.SignupResponse{
		Message: "Signup successful",
		User:    created.Username,
	})

	return nil
}

// HandleLogin processes user login requests.
// Expects a JSON body with fields: user, password.
// Returns a bearer token on successful login.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogin(w, r)
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "user login failed", "error", err)
		} else {
			log.DebugContext(ctx, "user logged in")
		}
	}(r.Context())

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))

		return errors.Join(ErrBadRequestBody, err)
	}

	if fieldErrors := requireFields(
		requiredField{"user", req.User},
		requiredField{"password", req.Password},
	); len(fieldErrors.Errors) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors)

		return ErrMissingFields
	}

	log = log.With(logging.Group("user", "username", *req.User))

	token, err := ht.authSvc.Login(r.Context(), *req.User, *req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusBadRequest, "User not found")
		case errors.Is(err, domain.ErrIncorrectPassword):
			writeError(w, http.StatusBadRequest, "Incorrect password")
		default:
			writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}

		return fmt.Errorf("login user: %w", err)
	}

	writeJSON(w, http.StatusOK, domain.TokenResponse{
		Message: "Login successful",
		Token:   token,
	})

	return nil
}

// HandleMe returns the account resolved by the access guard. A token whose
// user id no longer resolves to a stored account yields 404; the guard
// itself does not enforce existence.
func (ht *HTTPTransport) HandleMe(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleMe(w, r)
}

func (ht *HTTPTransport) handleMe(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "me lookup failed", "error", err)
		} else {
			log.DebugContext(ctx, "me lookup succeeded")
		}
	}(r.Context())

	identity, ok := context_.IdentityFromContext(r.Context())
	if !ok || identity.User == nil {
		writeError(w, http.StatusNotFound, "User not found")

		return domain.ErrUserNotFound
	}

	writeJSON(w, http.StatusOK, domain.UserResponse{
		ID:        identity.User.ID,
		User:      identity.User.Username,
		FirstName: identity.User.FirstName,
	})

	return nil
}

// --------- request/response helpers ---------

type requiredField struct {
	name  string
	value *string
}

// requireFields collects one error per absent field, keyed by the wire name,
// with the message "<Field> is required".
func requireFields(fields ...requiredField) domain.ValidationResponse {
	out := domain.ValidationResponse{Errors: map[string]string{}}

	for _, f := range fields {
		if f.value == nil {
			out.Errors[f.name] = capitalize(f.name) + " is required"
		}
	}

	return out
}

// capitalize upper-cases the first rune and lower-cases the rest,
// so "user" -> "User" and "first_name" -> "First_name".
func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, domain.ErrorResponse{Error: message})
}
