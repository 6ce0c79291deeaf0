// Package gateway is the HTTP adapter for the clinic API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// TokenSource yields the bearer token attached to outgoing requests.
// It is read on every request so credential attachment tracks durable
// storage rather than in-memory session state.
type TokenSource interface {
	Token() string
}

// Client talks to the clinic API. All responses share the
// {success, statusCode, message, data, errors, timestamp} envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validate   *validator.Validate
	logger     *slog.Logger

	// onAuthReject runs when any request outside the public auth
	// endpoints comes back 401.
	onAuthReject func()
}

// NewClient creates a gateway client with tuned transport settings.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// SetAuthRejectHook installs the central 401 handler.
func (c *Client) SetAuthRejectHook(fn func()) {
	c.onAuthReject = fn
}

// envelope is the wire format shared by every endpoint.
type envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       json.RawMessage     `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Timestamp  string              `json:"timestamp,omitempty"`
}

// APIError is a non-2xx response mapped onto the domain error taxonomy
// via Unwrap.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return domain.ErrValidation
	default:
		return domain.ErrServerUnavailable
	}
}

// publicAuthPaths are exempt from the 401 clear-session hook, so a bad
// login attempt cannot wipe an unrelated stored session. The profile
// verification endpoint is exempt too: the bootstrap controller owns
// that outcome and keeps an optimistically adopted session alive when
// verification fails.
var publicAuthPaths = map[string]bool{
	"/auth/login":      true,
	"/auth/register":   true,
	"/auth/verify-otp": true,
	"/auth/resend-otp": true,
	"/profile/me":      true,
}

// checkPayload validates a mutation payload before it leaves the
// process. Failures never reach the wire.
func (c *Client) checkPayload(p any) error {
	if err := c.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: field %s fails %q", domain.ErrValidation, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// do issues one request and decodes the envelope into out (when out is
// non-nil). Context cancellation passes through untouched so callers
// can tell a superseded request from a failed one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", domain.ErrServerUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil && resp.StatusCode < 400 {
		return fmt.Errorf("%w: decoding response: %w", domain.ErrServerUnavailable, decErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onAuthReject != nil && !publicAuthPaths[path] {
			c.onAuthReject()
		}
	}

	if resp.StatusCode >= 400 || !env.Success {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		apiErr := &APIError{Status: status, Message: env.Message, Fields: env.Errors}
		c.logger.Debug("request failed", "method", method, "path", path, "status", status)
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decoding data: %w", domain.ErrServerUnavailable, err)
	}
	return nil
}
