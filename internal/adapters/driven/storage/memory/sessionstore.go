package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions are lost when the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

// Save stores or updates a session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Elements = slices.Clone(session.Elements)
	s.sessions[session.Filename] = session
	return nil
}

// Get retrieves a session by filename.
func (s *SessionStore) Get(_ context.Context, filename string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[filename]
	if !ok {
		return nil, domain.ErrNotFound
	}
	session.Elements = slices.Clone(session.Elements)
	return &session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, filename)
	return nil
}

// List returns all sessions, oldest first.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	slices.SortFunc(result, func(a, b domain.Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareStrings(a.Filename, b.Filename)
	})
	return result, nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
