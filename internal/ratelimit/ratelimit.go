package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts hits per key inside a fixed window. The first hit of a
// window starts it; the count resets when the window elapses.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

func NewLimiter(store Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is still within
// the limit for the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return n <= l.limit, nil
}

type memoryEntry struct {
	count int64
	reset time.Time
}

// MemoryStore is a process-local Store for single-instance deployments
// and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.reset) {
		e = memoryEntry{count: 0, reset: now.Add(window)}
	}
	e.count++
	s.entries[key] = e
	return e.count, nil
}
