package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkrupp/authcase/internal/domain"
	context_ "github.com/mkrupp/authcase/internal/infra/context"
	"github.com/mkrupp/authcase/internal/infra/logging"
)

const (
	TraceIDHeader       = "X-Request-ID"
	AuthorizationHeader = "Authorization"
)

// HTTPClientConfig holds configuration for the HTTP auth client.
type HTTPClientConfig struct {
	// BaseURL is the root of the auth service API
	BaseURL string `env:"BASE_URL" default:"http://localhost:8080"`
}

// HTTPClient implements AuthClient using HTTP requests against the auth
// service endpoints.
type HTTPClient struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        HTTPClientConfig
}

var _ AuthClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient with the given configuration.
// If httpClient is nil, http.DefaultClient will be used.
func NewHTTPClient(
	cfg HTTPClientConfig,
	httpClient *http.Client,
) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.authsvc.http_client"),
		cfg:        cfg,
	}
}

// SignUp implements AuthClient.SignUp by POSTing to /auth/sign-up.
func (hc *HTTPClient) SignUp(ctx context.Context, username, password, firstName string) (string, error) {
	body := map[string]string{"user": username, "password": password}
	if firstName != "" {
		body["first_name"] = firstName
	}

	var out domain.SignupResponse
	if err := hc.post(ctx, "/auth/sign-up", "", body, &out); err != nil {
		return "", fmt.Errorf("sign up: %w", err)
	}

	return out.User, nil
}

// Login implements AuthClient.Login by POSTing to /auth/login.
func (hc *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"user": username, "password": password}

	var out domain.TokenResponse
	if err := hc.post(ctx, "/auth/login", "", body, &out); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	return out.Token, nil
}

// Me implements AuthClient.Me by GETting /auth/me with the token in the
// Authorization header.
func (hc *HTTPClient) Me(ctx context.Context, token string) (int64, string, error) {
	req, err := hc.newRequest(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return 0, "", err
	}

	var out domain.UserResponse
	if err := hc.do(req, &out); err != nil {
		return 0, "", fmt.Errorf("me: %w", err)
	}

	return out.ID, out.User, nil
}

func (hc *HTTPClient) post(ctx context.Context, path, token string, body, out any) error {
	req, err := hc.newRequest(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return err
	}

	return hc.do(req, out)
}

func (hc *HTTPClient) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var payload bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, hc.cfg.BaseURL+path, &payload)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set(AuthorizationHeader, token)
	}

	if traceID, ok := context_.TraceIDFromContext(ctx); ok {
		req.Header.Set(TraceIDHeader, traceID)
	}

	return req, nil
}

func (hc *HTTPClient) do(req *http.Request, out any) error {
	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr domain.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
		}

		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
