package domain

import "context"

// CredentialStore persists the {user, token} pair across runs. Load
// returns ErrNoCredentials when nothing usable is stored. Token reads
// the durable token alone; it can outlive a corrupted user record.
type CredentialStore interface {
	Load() (*Credentials, error)
	Save(Credentials) error
	Clear() error
	Token() string
}

// SessionStore holds the in-memory session state for one process.
type SessionStore interface {
	Snapshot() Session
	Adopt(user *User, token string)
	MarkInitialized()
	Clear()
}

// SessionVerifier asks the server who the bearer of the current
// credentials is.
type SessionVerifier interface {
	VerifySession(ctx context.Context) (*User, error)
}
