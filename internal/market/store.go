package market

import "sync"

// LatestStore holds the snapshot most recently published by the aggregator.
// Single writer, any number of concurrent readers; readers always get copies.
type LatestStore struct {
	mu     sync.RWMutex
	latest map[Key]Bar
}

func NewLatestStore() *LatestStore {
	return &LatestStore{
		latest: make(map[Key]Bar),
	}
}

// Publish replaces the stored snapshot with the given bars.
func (s *LatestStore) Publish(bars []Bar) {
	next := make(map[Key]Bar, len(bars))
	for _, b := range bars {
		next[b.Key()] = b
	}

	s.mu.Lock()
	s.latest = next
	s.mu.Unlock()
}

// Latest returns the most recently observed bar for key, if any.
func (s *LatestStore) Latest(key Key) (Bar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.latest[key]
	return b, ok
}

// All returns a copy of every stored bar.
func (s *LatestStore) All() map[Key]Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Key]Bar, len(s.latest))
	for k, b := range s.latest {
		out[k] = b
	}
	return out
}

// Count returns the number of pairs with at least one observation.
func (s *LatestStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.latest)
}
