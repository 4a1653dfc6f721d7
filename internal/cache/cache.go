// Package cache keeps recently used chains in memory with TTL eviction,
// loading them from the store on miss.
package cache

import (
	"log"
	"sync"
	"time"

	"charliebot/internal/markov"
	"charliebot/internal/store"
)

type entry struct {
	chain    *markov.Chain
	lastUsed time.Time
}

// Cache maps normalized nicks to loaded chains. Lookups touch an entry's
// lastUsed; Sweep evicts entries idle longer than the TTL. There is no
// capacity bound: between sweeps memory grows with the number of distinct
// nicks looked up.
type Cache struct {
	ttl   time.Duration
	store *store.Store

	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time
}

func New(s *store.Store, ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		store:   s,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Lookup returns the chain for nick, loading it from disk on a miss. A chain
// that cannot be loaded is reported as absent, not as an error. The disk read
// happens outside the lock; when two lookups race on the same nick the first
// insert wins and both callers get the same chain.
func (c *Cache) Lookup(nick string) (*markov.Chain, bool) {
	c.mu.Lock()
	if e, ok := c.entries[nick]; ok {
		e.lastUsed = c.now()
		chain := e.chain
		c.mu.Unlock()
		return chain, true
	}
	c.mu.Unlock()

	chain, err := c.store.Load(nick)
	if err != nil {
		log.Printf("could not load chain for nick %q (path %s): %v", nick, c.store.PathFor(nick), err)
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[nick]; ok {
		e.lastUsed = c.now()
		return e.chain, true
	}
	c.entries[nick] = &entry{chain: chain, lastUsed: c.now()}
	return chain, true
}

// Sweep evicts every entry idle longer than the TTL. Meant to run on a fixed
// period strictly smaller than the TTL.
func (c *Cache) Sweep() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for nick, e := range c.entries {
		if now.Sub(e.lastUsed) > c.ttl {
			delete(c.entries, nick)
			log.Printf("cleanup entry for %q", nick)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
