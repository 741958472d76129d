// Package session keeps per-user form state between interactions.
//
// The only state that survives a render pass is the ordered list of employee
// names a user has added. Everything else is recomputed from the request.
package session

import (
	"sync"
	"time"
)

// Session holds the state owned by one user session.
type Session struct {
	id string

	mu       sync.Mutex
	names    []string
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{id: id, lastSeen: now}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// AddName appends name to the employee list. Empty names are ignored and
// report false. Names are stored verbatim: no trimming, no dedup.
func (s *Session) AddName(name string) bool {
	if name == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	return true
}

// Names returns a copy of the employee names in insertion order.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
