package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps sliding windows in process. Not shared across
// replicas; use RedisStore for that.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

type MemoryOption func(*InMemoryStore)

// WithClock sets the clock used for window accounting.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{windows: make(map[string][]time.Time), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stamps := prune(s.windows[key], now.Add(-window))
	if len(stamps) >= limit {
		s.windows[key] = stamps
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt(stamps, now, window)}, nil
	}
	stamps = append(stamps, now)
	s.windows[key] = stamps
	return &Result{Allowed: true, Limit: limit, Remaining: limit - len(stamps), ResetAt: resetAt(stamps, now, window)}, nil
}

// prune drops timestamps at or before cutoff.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}

func resetAt(stamps []time.Time, now time.Time, window time.Duration) time.Time {
	if len(stamps) == 0 {
		return now.Add(window)
	}
	return stamps[0].Add(window)
}
