// Package session holds the in-memory session state for one process.
package session

import (
	"sync"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// Store is an explicitly constructed, injectable session store.
// It starts empty and is mutated only by the bootstrap controller and
// the auth use cases. Implements domain.SessionStore.
type Store struct {
	mu          sync.RWMutex
	user        *domain.User
	token       string
	initialized bool
}

// NewStore returns an empty, uninitialized store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *domain.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return domain.Session{
		User:        user,
		Token:       s.token,
		Initialized: s.initialized,
	}
}

// Adopt replaces the session identity.
func (s *Store) Adopt(user *domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user != nil {
		u := *user
		s.user = &u
	} else {
		s.user = nil
	}
	s.token = token
}

// MarkInitialized records that bootstrap reached a definitive answer.
func (s *Store) MarkInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
}

// Clear empties the session. The initialized flag survives: a cleared
// session is still a definitive answer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}
