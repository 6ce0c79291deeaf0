package usecase

import (
	"context"
	"log/slog"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// Auth orchestrates the authentication flows. Establishing a session
// writes both durable keys and the in-memory store together; tearing
// one down clears them together.
type Auth struct {
	gw       *gateway.Client
	creds    domain.CredentialStore
	sessions domain.SessionStore
	qc       *cache.QueryCache
	logger   *slog.Logger
}

// NewAuth creates the auth use case.
func NewAuth(gw *gateway.Client, creds domain.CredentialStore, sessions domain.SessionStore, qc *cache.QueryCache, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{gw: gw, creds: creds, sessions: sessions, qc: qc, logger: logger}
}

// Register starts registration; returns the email the OTP went to.
func (a *Auth) Register(ctx context.Context, p domain.RegisterPayload) (string, error) {
	return a.gw.Register(ctx, p)
}

// ResendOTP requests a fresh registration code.
func (a *Auth) ResendOTP(ctx context.Context, email string) error {
	return a.gw.ResendOTP(ctx, domain.ResendOTPPayload{Email: email})
}

// VerifyOTP confirms the registration code and establishes a session.
func (a *Auth) VerifyOTP(ctx context.Context, p domain.VerifyOTPPayload) (domain.Session, error) {
	res, err := a.gw.VerifyOTP(ctx, p)
	if err != nil {
		return a.sessions.Snapshot(), err
	}
	a.establish(res)
	return a.sessions.Snapshot(), nil
}

// Login authenticates and establishes a session.
func (a *Auth) Login(ctx context.Context, p domain.LoginPayload) (domain.Session, error) {
	res, err := a.gw.Login(ctx, p)
	if err != nil {
		return a.sessions.Snapshot(), err
	}
	a.establish(res)
	return a.sessions.Snapshot(), nil
}

// Logout tears the session down. Local state is cleared even when the
// server call fails, so a dead server cannot pin a session.
func (a *Auth) Logout(ctx context.Context) error {
	err := a.gw.Logout(ctx)
	a.teardown()
	return err
}

// HandleAuthReject is installed as the gateway's central 401 hook: a
// rejected credential is cleared everywhere immediately.
func (a *Auth) HandleAuthReject() {
	a.logger.Debug("authentication rejected, clearing session")
	a.teardown()
}

func (a *Auth) establish(res *gateway.AuthResult) {
	if err := a.creds.Save(domain.Credentials{User: res.User, Token: res.Token}); err != nil {
		a.logger.Warn("persisting session", "error", err)
	}
	a.sessions.Adopt(&res.User, res.Token)
	a.sessions.MarkInitialized()
	a.qc.Invalidate(domain.NewTagSet(domain.TypeTag(domain.TagUser)))
}

func (a *Auth) teardown() {
	if err := a.creds.Clear(); err != nil {
		a.logger.Warn("clearing stored credentials", "error", err)
	}
	a.sessions.Clear()
	a.qc.Invalidate(allTags())
}
