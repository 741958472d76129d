package session

import "time"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithTTL sets how long an idle session lives. ttl <= 0 disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *InMemoryStore) {
		s.ttl = ttl
	}
}

// WithMaxSessions bounds the number of live sessions.
// If maxSessions > 0 the least recently used session is evicted at capacity.
// If maxSessions <= 0 the store is unbounded.
func WithMaxSessions(maxSessions int) Option {
	return func(s *InMemoryStore) {
		s.maxSessions = maxSessions
	}
}

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
