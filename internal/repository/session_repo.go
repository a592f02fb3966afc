package repository

import (
	"errors"
	"sync"
	"time"

	"profilevault/internal/models"
)

// ErrSessionNotFound covers unknown ids and sessions past their expiry.
var ErrSessionNotFound = errors.New("session not found")

// SessionMemoryRepository keeps sessions in process memory. Sessions do not
// survive a restart, which matches the framework-held session store this
// replaces. Safe for concurrent use.
type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time // overridable in tests
}

func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

var _ Sessions = (*SessionMemoryRepository)(nil)

// Create stores the session record under its id.
func (r *SessionMemoryRepository) Create(s models.Session) error {
	if s.ID == "" {
		return errors.New("session id is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// Get returns the live session for id. Expired sessions are removed on
// access and reported as not found.
func (r *SessionMemoryRepository) Get(id string) (models.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	if r.now().After(s.ExpiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return models.Session{}, ErrSessionNotFound
	}
	return s, nil
}

// Delete destroys the session. Deleting an unknown id is not an error.
func (r *SessionMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
