// Package session is an in-memory cookie-session store backing the
// preferences demo routes.
//
// DELIBERATELY NOT A DATABASE:
// These sessions exist to teach cookie-based identification — the point is
// that the server holds per-visitor state keyed by an opaque cookie value.
// Keeping them in process memory means they vanish on restart, which is
// part of the lesson (and why real apps reach for JWT or a session DB).
//
// CONCURRENCY:
// The HTTP server calls into this store from many goroutines at once, so
// the map is guarded by a sync.RWMutex. RWMutex (not plain Mutex) because
// reads vastly outnumber writes: every /api/preferences GET is a read,
// while only login and preference updates write.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sakif/course-api/internal/dto"
)

// CookieName is the cookie that carries the session ID.
const CookieName = "session_id"

// Store is a mutex-guarded map from session ID to preferences.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]dto.Preferences
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]dto.Preferences),
	}
}

// Create opens a new session with the given initial preferences and
// returns its ID — a random UUID, which is unguessable enough that knowing
// one session ID tells you nothing about any other.
func (s *Store) Create(prefs dto.Preferences) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = prefs
	s.mu.Unlock()

	return id
}

// Get returns the preferences for a session ID.
// The second return is false for unknown (or expired-by-restart) IDs.
func (s *Store) Get(id string) (dto.Preferences, bool) {
	s.mu.RLock()
	prefs, ok := s.sessions[id]
	s.mu.RUnlock()
	return prefs, ok
}

// Set replaces the preferences for an existing session.
// Returns false if the session doesn't exist — Set never creates one,
// only Create does.
func (s *Store) Set(id string, prefs dto.Preferences) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	s.sessions[id] = prefs
	return true
}

// Delete removes a session. Deleting a missing session is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of live sessions. Used by tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
