// Package cache holds rendered page payloads keyed by request path
// ("/", "/category/{id}", "/thread/{id}"). Submissions invalidate the
// affected paths; reads go through Get/Set from the GET handlers.
package cache

import (
	"sync"
	"time"
)

// Invalidator is what the submission pipeline depends on.
// Invalidation is best-effort: implementations must not fail the
// submission.
type Invalidator interface {
	Invalidate(path string)
}

type entry struct {
	body      []byte
	expiresAt time.Time
}

type PageCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *PageCache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.body, true
}

func (c *PageCache) Set(path string, body []byte) {
	c.mu.Lock()
	c.entries[path] = entry{body: body, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *PageCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Purge drops expired entries. Call periodically.
func (c *PageCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for path, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, path)
		}
	}
}
