// Package session holds per-conversation ephemeral state. One State per
// active call, created at session start, read exhaustively at session end,
// then discarded. State is never shared across sessions.
package session

import (
	"errors"
	"sync"
	"time"

	"voicebook/models"
	"voicebook/services/preference"
)

// ErrAlreadyIdentified rejects an attempt to re-identify a session as a
// different user mid-call.
var ErrAlreadyIdentified = errors.New("session is already identified as a different user")

// State is the mutable per-session record. The op mutex serializes whole
// operations: a session never has two operations in flight at once.
type State struct {
	// opMu is held for the full duration of a dispatched operation.
	opMu sync.Mutex

	mu            sync.Mutex
	id            string
	contactNumber string
	knownUser     bool
	startedAt     time.Time
	invocations   []models.ToolInvocation
	preferences   models.Preferences
	usage         models.UsageCounters
	ended         bool
}

func newState(id string, now time.Time) *State {
	return &State{id: id, startedAt: now}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// BeginOperation blocks until the session has no operation in flight.
func (s *State) BeginOperation() { s.opMu.Lock() }

// EndOperation releases the in-flight operation guard.
func (s *State) EndOperation() { s.opMu.Unlock() }

// Identify binds the session to a contact number, at most once. Repeating
// the same identity is a no-op; switching identities fails.
func (s *State) Identify(contactNumber string, knownUser bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contactNumber != "" && s.contactNumber != contactNumber {
		return ErrAlreadyIdentified
	}
	if s.contactNumber == "" {
		s.contactNumber = contactNumber
		s.knownUser = knownUser
	}
	return nil
}

// Contact returns the resolved contact number, empty before identification.
func (s *State) Contact() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactNumber
}

// KnownUser reports whether the identity existed before this session.
func (s *State) KnownUser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.knownUser
}

// StartedAt returns the session start time.
func (s *State) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// LogInvocation appends one entry to the session's operation log.
func (s *State) LogInvocation(operation string, args map[string]interface{}, result string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invocations = append(s.invocations, models.ToolInvocation{
		Operation: operation,
		Arguments: args,
		Result:    result,
		Timestamp: at,
	})
}

// Invocations returns a copy of the operation log in issue order.
func (s *State) Invocations() []models.ToolInvocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ToolInvocation, len(s.invocations))
	copy(out, s.invocations)
	return out
}

// ApplyBooking folds a successful booking or reschedule into the session's
// preference summary.
func (s *State) ApplyBooking(date, timeStr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = preference.Update(s.preferences, date, timeStr)
}

// Preferences returns the current preference summary.
func (s *State) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// AddUsage merges reported usage counters into the session totals.
func (s *State) AddUsage(delta models.UsageCounters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage.Add(delta)
}

// Usage returns the accumulated usage counters.
func (s *State) Usage() models.UsageCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// MarkEnded flags the session as terminated. Returns false when it already
// was, so end-of-session processing runs at most once.
func (s *State) MarkEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false
	}
	s.ended = true
	return true
}

// Ended reports whether the session has terminated.
func (s *State) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}
