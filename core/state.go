package core

import (
	"sync"
	"time"
)

type StateStoreConfig struct {
	TTL     time.Duration
	MaxSize int
}

// StateStore holds outstanding oauth state values between the
// authorization redirect and the provider callback. States are
// single-use: Consume removes the value whether or not it was valid.
type StateStore struct {
	states  map[string]time.Time // state -> issued at
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
}

func NewStateStore(c StateStoreConfig) *StateStore {
	if c.TTL == 0 {
		c.TTL = 10 * time.Minute
	}
	if c.MaxSize == 0 {
		c.MaxSize = 1000
	}

	return &StateStore{
		states:  make(map[string]time.Time),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Issue records a state value as outstanding.
func (s *StateStore) Issue(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop expired entries first, then evict arbitrarily if still full.
	if len(s.states) >= s.maxSize {
		now := time.Now()
		for k, issuedAt := range s.states {
			if now.Sub(issuedAt) > s.ttl {
				delete(s.states, k)
			}
		}
		for k := range s.states {
			if len(s.states) < s.maxSize {
				break
			}
			delete(s.states, k)
		}
	}

	s.states[state] = time.Now()
}

// Consume reports whether state is outstanding and not expired, and
// removes it either way.
func (s *StateStore) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)

	return time.Since(issuedAt) <= s.ttl
}

func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
