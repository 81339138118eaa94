package memory

import (
	"context"
	"sync"

	"github.com/galeria/marketplace-api/internal/domains/users/ports"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]int64{}}
}

func (s *SessionStore) Save(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	if !ok {
		return 0, ports.ErrSessionNotFound
	}
	return userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
