// Package credstore persists session credentials between runs.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

const (
	userFile  = "user.json"
	tokenFile = "access_token"
)

// FileStore keeps the two durable keys, the serialized user and the
// bearer token, as files under a directory. Both are written together
// and cleared together. Implements domain.CredentialStore.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns the per-user credential directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "clinicctl"), nil
}

// Load reads the persisted pair. A missing or unreadable pair yields
// domain.ErrNoCredentials; a pair missing the minimum identity fields
// does too, since it cannot seed a session.
func (s *FileStore) Load() (*domain.Credentials, error) {
	userRaw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNoCredentials
		}
		return nil, fmt.Errorf("reading stored user: %w", err)
	}

	tokenRaw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNoCredentials
		}
		return nil, fmt.Errorf("reading stored token: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return nil, domain.ErrNoCredentials
	}

	token := strings.TrimSpace(string(tokenRaw))
	if !user.WellFormed() || token == "" {
		return nil, domain.ErrNoCredentials
	}

	return &domain.Credentials{User: user, Token: token}, nil
}

// Save writes both keys. The token file is written last so a partial
// write never leaves a token without its user.
func (s *FileStore) Save(creds domain.Credentials) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating credential dir: %w", err)
	}

	userRaw, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, userFile), userRaw, 0o600); err != nil {
		return fmt.Errorf("writing stored user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(creds.Token), 0o600); err != nil {
		return fmt.Errorf("writing stored token: %w", err)
	}
	return nil
}

// Clear removes both keys. Missing files are not an error.
func (s *FileStore) Clear() error {
	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

// Token returns the stored bearer token, or "" when none is stored.
// The gateway reads the token through this method on every request so
// credential attachment tracks durable storage, not in-memory state.
func (s *FileStore) Token() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
