package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// BootstrapSession reconciles locally persisted credentials with the
// server before any protected operation runs. It produces exactly one
// definitive answer per process: authenticated with some user, or not.
//
// The sequence: load the persisted {user, token} pair; when it carries
// the minimum identity fields, adopt it optimistically; then issue one
// cancellable verification request. The server's user overwrites the
// optimistic copy on success. On any failure other than cancellation
// the optimistic candidate survives, so a flaky network does not log
// the user out. A superseded verification never touches state.
type BootstrapSession struct {
	creds    domain.CredentialStore
	sessions domain.SessionStore
	verifier domain.SessionVerifier
	logger   *slog.Logger

	mu         sync.Mutex
	cancelPrev context.CancelFunc
	generation uint64
}

// NewBootstrapSession creates the bootstrap controller.
func NewBootstrapSession(creds domain.CredentialStore, sessions domain.SessionStore, verifier domain.SessionVerifier, logger *slog.Logger) *BootstrapSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapSession{
		creds:    creds,
		sessions: sessions,
		verifier: verifier,
		logger:   logger,
	}
}

// Execute runs the bootstrap sequence. When the session store is
// already initialized it returns immediately without any request.
// A cancelled verification returns the untouched snapshot together
// with the context error; the superseding call owns the outcome.
func (uc *BootstrapSession) Execute(ctx context.Context) (domain.Session, error) {
	if snap := uc.sessions.Snapshot(); snap.Initialized {
		return snap, nil
	}

	candidate, err := uc.creds.Load()
	hasCandidate := err == nil && candidate != nil
	if err != nil && !errors.Is(err, domain.ErrNoCredentials) {
		uc.logger.Warn("unreadable stored credentials", "error", err)
	}
	if hasCandidate {
		// Optimistic adoption: protected reads may proceed on the
		// cached identity while verification is in flight.
		uc.sessions.Adopt(&candidate.User, candidate.Token)
	}

	vctx, cancel, gen := uc.supersede(ctx)
	defer uc.release(cancel, gen)

	user, verr := uc.verifier.VerifySession(vctx)
	switch {
	case verr == nil:
		// Server is authoritative over the cached copy. Without a
		// candidate the durable token is the one that just signed the
		// verification, so the pair is repaired from it.
		token := ""
		if hasCandidate {
			token = candidate.Token
		}
		if token == "" {
			token = uc.creds.Token()
		}
		uc.sessions.Adopt(user, token)
		if token != "" {
			if err := uc.creds.Save(domain.Credentials{User: *user, Token: token}); err != nil {
				uc.logger.Warn("persisting verified session", "error", err)
			}
		}

	case errors.Is(verr, context.Canceled):
		// Superseded or unmounted: no state change, no flag flip.
		return uc.sessions.Snapshot(), verr

	case errors.Is(verr, domain.ErrMalformedUser):
		// Success with an unusable payload. An optimistic candidate is
		// kept; with no candidate the answer is "no session".
		uc.logger.Warn("verification returned malformed user")
		if !hasCandidate {
			uc.sessions.Clear()
		}

	default:
		// Network error, 401, 5xx. Keep the candidate when present so
		// the client degrades gracefully offline.
		uc.logger.Debug("verification failed", "error", verr)
		if !hasCandidate {
			uc.sessions.Clear()
		}
	}

	uc.sessions.MarkInitialized()
	return uc.sessions.Snapshot(), nil
}

// supersede cancels any verification still in flight and registers the
// new one. At most one verification is ever outstanding.
func (uc *BootstrapSession) supersede(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.cancelPrev != nil {
		uc.cancelPrev()
	}
	vctx, cancel := context.WithCancel(ctx)
	uc.cancelPrev = cancel
	uc.generation++
	return vctx, cancel, uc.generation
}

// release retires this call's cancel func unless a newer verification
// already replaced it.
func (uc *BootstrapSession) release(cancel context.CancelFunc, gen uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	cancel()
	if uc.generation == gen {
		uc.cancelPrev = nil
	}
}
