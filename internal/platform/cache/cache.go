// Package cache is a small in-process read cache for backend list and
// detail responses. Entries are grouped by resource name so a mutation on
// a resource can drop every cached read for it at once.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	// resource -> key -> entry
	resources map[string]map[string]entry
	now       func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:       ttl,
		resources: make(map[string]map[string]entry),
		now:       time.Now,
	}
}

func (c *Cache) Get(resource, key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys, ok := c.resources[resource]
	if !ok {
		return nil, false
	}
	e, ok := keys[key]
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(resource, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys, ok := c.resources[resource]
	if !ok {
		keys = make(map[string]entry)
		c.resources[resource] = keys
	}
	keys[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate drops every cached read for the resource. Mutations call this
// rather than chasing individual record keys.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resources, resource)
}

func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = make(map[string]map[string]entry)
}
