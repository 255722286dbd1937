package session

import (
	"sync"
	"time"
)

// Phase is the position of a session in the generation cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseGenerating
	PhaseCached
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseGenerating:
		return "generating"
	case PhaseCached:
		return "cached"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the explicit per-user context the orchestrator reads and
// updates. Callers hold Lock for the duration of an operation so that one
// session is never driven by two requests at once.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	cache       *Cache
	phase       Phase
	lastFailure string
	lastSeen    time.Time
}

// New returns an idle session with an empty cache.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		cache:     NewCache(),
		phase:     PhaseIdle,
		lastSeen:  now,
	}
}

// Lock serialises operations on the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Cache returns the session's itinerary cache.
func (s *Session) Cache() *Cache { return s.cache }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// SetPhase moves the session to p.
func (s *Session) SetPhase(p Phase) { s.phase = p }

// LastFailure returns the reason of the most recent failed generation, if the
// session's last cycle failed.
func (s *Session) LastFailure() string { return s.lastFailure }

// SetLastFailure records reason; an empty reason clears it.
func (s *Session) SetLastFailure(reason string) { s.lastFailure = reason }
