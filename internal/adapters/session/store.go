package session

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scorecard/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultTTL         = 24 * time.Hour
	defaultMaxSessions = 10_000
)

// Store tracks live sessions by id.
type Store interface {
	// GetOrCreate returns the live session for id. Unknown, empty or expired
	// ids get a fresh session with a newly minted id; created reports that.
	GetOrCreate(ctx context.Context, id string) (s *Session, created bool)

	// Get returns the live session for id or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete ends a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string)

	// Sweep drops every session idle for longer than the TTL and returns
	// how many were removed.
	Sweep(ctx context.Context) int

	// Len returns the number of live sessions.
	Len(ctx context.Context) int
}

// InMemoryStore implements Store with a map plus an LRU list.
// The front of order is the most recently used session.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*list.Element
	order    *list.List

	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewInMemoryStore creates a session store with configuration options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		ttl:         defaultTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.sessions = make(map[string]*list.Element)
	s.order = list.New()
	return s
}

// GetOrCreate implements Store.
func (s *InMemoryStore) GetOrCreate(ctx context.Context, id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess := s.lookup(id, now); sess != nil {
		return sess, false
	}

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}

	sess := newSession(uuid.NewString(), now)
	s.sessions[sess.id] = s.order.PushFront(sess)
	metrics.RecordSessionCreated()
	metrics.UpdateActiveSessions(len(s.sessions))
	return sess, true
}

// Get implements Store.
func (s *InMemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.lookup(id, s.now()); sess != nil {
		return sess, nil
	}
	return nil, ErrNotFound
}

// Delete implements Store.
func (s *InMemoryStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.sessions[id]; ok {
		s.remove(el)
		metrics.UpdateActiveSessions(len(s.sessions))
	}
}

// Sweep implements Store.
func (s *InMemoryStore) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*Session).expired(now, s.ttl) {
			s.remove(el)
			removed++
		}
		el = prev
	}
	if removed > 0 {
		metrics.RecordSessionsExpired(removed)
		metrics.UpdateActiveSessions(len(s.sessions))
	}
	return removed
}

// Len implements Store.
func (s *InMemoryStore) Len(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookup returns the live session for id and marks it used.
// Must be called with s.mu held.
func (s *InMemoryStore) lookup(id string, now time.Time) *Session {
	if id == "" {
		return nil
	}
	el, ok := s.sessions[id]
	if !ok {
		return nil
	}
	sess := el.Value.(*Session)
	if sess.expired(now, s.ttl) {
		s.remove(el)
		metrics.RecordSessionsExpired(1)
		metrics.UpdateActiveSessions(len(s.sessions))
		return nil
	}
	sess.touch(now)
	s.order.MoveToFront(el)
	return sess
}

// evictOldest drops the least recently used session.
// Must be called with s.mu held.
func (s *InMemoryStore) evictOldest() {
	if el := s.order.Back(); el != nil {
		s.remove(el)
		metrics.RecordSessionEvicted()
	}
}

// Must be called with s.mu held.
func (s *InMemoryStore) remove(el *list.Element) {
	sess := s.order.Remove(el).(*Session)
	delete(s.sessions, sess.id)
}
