package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// AuthResult is the server's answer to a successful login or OTP
// verification.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Register starts account registration. The server sends an OTP to the
// returned email address.
func (c *Client) Register(ctx context.Context, p domain.RegisterPayload) (string, error) {
	if err := c.checkPayload(p); err != nil {
		return "", err
	}

	var data struct {
		Email string `json:"email"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, p, &data); err != nil {
		return "", err
	}
	if data.Email == "" {
		data.Email = p.Email
	}
	return data.Email, nil
}

// VerifyOTP confirms the registration code and establishes a session.
func (c *Client) VerifyOTP(ctx context.Context, p domain.VerifyOTPPayload) (*AuthResult, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}

	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, p, &res); err != nil {
		return nil, err
	}
	if !res.User.WellFormed() || res.Token == "" {
		return nil, fmt.Errorf("%w: verify-otp response", domain.ErrMalformedUser)
	}
	return &res, nil
}

// ResendOTP requests a fresh registration code.
func (c *Client) ResendOTP(ctx context.Context, p domain.ResendOTPPayload) error {
	if err := c.checkPayload(p); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/auth/resend-otp", nil, p, nil)
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, p domain.LoginPayload) (*AuthResult, error) {
	if err := c.checkPayload(p); err != nil {
		return nil, err
	}

	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, p, &res); err != nil {
		return nil, err
	}
	if !res.User.WellFormed() || res.Token == "" {
		return nil, fmt.Errorf("%w: login response", domain.ErrMalformedUser)
	}
	return &res, nil
}

// Logout invalidates the server-side session. Local credentials are
// the caller's responsibility.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// VerifySession asks the server who the current bearer token belongs
// to. A well-formed answer carries a non-empty id and email; anything
// else maps to ErrMalformedUser rather than a hard failure.
// Implements domain.SessionVerifier.
func (c *Client) VerifySession(ctx context.Context) (*domain.User, error) {
	var data struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile/me", nil, nil, &data); err != nil {
		return nil, err
	}
	if !data.User.WellFormed() {
		return nil, fmt.Errorf("%w: profile response", domain.ErrMalformedUser)
	}
	return data.User, nil
}
