package tasksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// APIPrefix is the path prefix of every API route.
const APIPrefix = "/api/v1"

// SDKClient is a client for the tasks service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a session for it.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	return c.authenticate(ctx, "/register", req, http.StatusCreated)
}

// Login authenticates with email and password.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	return c.authenticate(ctx, "/login", req, http.StatusOK)
}

// NewSession wraps an existing token.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *SDKClient) authenticate(ctx context.Context, path string, req any, expected int) (*Session, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, APIPrefix+path, body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, expected); err != nil {
		return nil, err
	}

	return &Session{client: c, token: auth.Token, user: auth.UserResponse}, nil
}

// LoginStatus reports whether token is a valid session token.
func (c *SDKClient) LoginStatus(ctx context.Context, token string) (bool, error) {
	headers := map[string]string{}
	if token != "" {
		headers["Cookie"] = cookieName + "=" + token
	}

	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/login-status", nil, headers)
	if err != nil {
		return false, err
	}

	var ok bool
	if err := decodeJSON(resp, &ok, http.StatusOK); err != nil {
		return false, err
	}
	return ok, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
