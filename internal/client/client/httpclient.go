package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heva-credit/heva/internal/client/models"
)

// Backend routes.
const (
	RegisterPath       = "/api/auth/register"
	CheckEmailPath     = "/api/auth/check-email"
	ForgotPasswordPath = "/api/auth/forgot-password"
	HealthPath         = "/api/health"
)

// DefaultTimeout bounds every request when NewHTTPClient gets a zero timeout.
const DefaultTimeout = 10 * time.Second

const maxBodyBytes = 64 << 10

// HTTPClient talks to the backend over its JSON REST API.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. "http://localhost:8081").
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// do sends a request and returns the body of a 2xx response. Transport
// failures are wrapped with ErrUnavailable, other statuses come back as
// *StatusError.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) ([]byte, error) {
	return c.do(ctx, http.MethodPost, RegisterPath, nil, data)
}

type checkEmailResponse struct {
	Available *bool `json:"available"`
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, CheckEmailPath, url.Values{"email": {email}}, nil)
	if err != nil {
		return false, err
	}

	var resp checkEmailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("decode check-email response: %w", err)
	}
	if resp.Available == nil {
		return false, fmt.Errorf("decode check-email response: missing available flag")
	}
	return *resp.Available, nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, ForgotPasswordPath, nil, forgotPasswordRequest{Email: email})
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, HealthPath, nil, nil)
	return err
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
