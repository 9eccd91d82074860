package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SlidingWindow is an in-process Limiter used in development and
// tests, when no remote backend is configured but throttling is still
// wanted. Same policy as the backend: capacity requests per window.
type SlidingWindow struct {
	mu       sync.Mutex
	window   time.Duration
	capacity int
	hits     map[string][]time.Time
	now      func() time.Time
}

func NewSlidingWindow(window time.Duration, capacity int) *SlidingWindow {
	return &SlidingWindow{
		window:   window,
		capacity: capacity,
		hits:     make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (s *SlidingWindow) Limit(_ context.Context, identifier string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	kept := s.hits[identifier][:0]
	for _, ts := range s.hits[identifier] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	res := Result{
		Limit: s.capacity,
		Reset: now.Add(s.window),
	}
	if len(kept) >= s.capacity {
		s.hits[identifier] = kept
		if len(kept) > 0 {
			res.Reset = kept[0].Add(s.window)
		}
		return res, nil
	}

	kept = append(kept, now)
	s.hits[identifier] = kept
	res.Allowed = true
	res.Remaining = s.capacity - len(kept)
	return res, nil
}

// Prune drops identifiers with no hits inside the window. Call
// periodically, the limiter does not clean up by itself.
func (s *SlidingWindow) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.window)
	for id, hits := range s.hits {
		live := false
		for _, ts := range hits {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(s.hits, id)
		}
	}
}
