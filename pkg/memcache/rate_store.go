// pkg/memcache/rate_store.go
package mem

import (
	"context"
	"sync"
	"time"
)

// RateStore caches exchange rates keyed by currency pair.
type RateStore interface {
	Get(ctx context.Context, pair string) (float64, bool)
	Set(ctx context.Context, pair string, rate float64, ttl time.Duration)
}

type entry struct {
	rate      float64
	expiresAt time.Time
}

type MemoryRates struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryRates() *MemoryRates {
	return &MemoryRates{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryRates) Set(_ context.Context, pair string, rate float64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[pair] = entry{
		rate:      rate,
		expiresAt: s.now().Add(ttl),
	}
}

// Get returns the cached rate if present and not expired. Expired entries are dropped.
func (s *MemoryRates) Get(_ context.Context, pair string) (float64, bool) {
	s.mu.RLock()
	e, ok := s.data[pair]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, pair) // cleanup expired
		s.mu.Unlock()
		return 0, false
	}
	return e.rate, true
}
