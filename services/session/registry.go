package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates no active session with the given ID.
var ErrNotFound = errors.New("session not found")

// Registry tracks active sessions by ID with an explicit create/destroy
// lifecycle. There is no hidden global state: callers hold a Registry and
// pass session IDs around.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*State
	now      func() time.Time
}

// NewRegistry constructs an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// WithClock overrides the registry clock. Test hook.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Create starts a new empty session and returns it.
func (r *Registry) Create() *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newState(uuid.New().String(), r.now().UTC())
	r.sessions[s.ID()] = s
	return s
}

// Get returns the active session with the given ID or ErrNotFound.
func (r *Registry) Get(id string) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy removes a session from the registry. The state itself is garbage
// once no caller holds it; nothing is persisted here.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
