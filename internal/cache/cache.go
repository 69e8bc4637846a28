// Package cache provides an in-memory TTL cache for HTTP responses,
// keyed by a request fingerprint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry is one cached HTTP response.
type Entry struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

type item struct {
	entry     Entry
	expiresAt time.Time
}

// Cache is a TTL response cache. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

// New creates a Cache with the given default TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

// Key fingerprints a request: method, resolved URL, encoded query, and body.
func Key(method, url, query, body string) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the entry and true when the key is present and unexpired.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(it.expiresAt) {
		return Entry{}, false
	}
	return it.entry, true
}

// Set stores an entry under key with the cache's default TTL.
func (c *Cache) Set(key string, entry Entry) {
	c.mu.Lock()
	c.items[key] = item{
		entry:     entry,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Delete removes an entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]item)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
