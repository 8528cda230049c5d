// Package memorystore keeps pending login state in process memory. Only safe
// for single-instance deployments; use the Redis backend otherwise.
package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/wooyeon-app/wy-backend/oauth"
)

type entry struct {
	data    oauth.StateData
	expires time.Time
}

// StateCache is an in-memory oauth.StateCache with TTL support.
type StateCache struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewStateCache() *StateCache {
	return &StateCache{entries: make(map[string]entry)}
}

func (c *StateCache) Put(ctx context.Context, state string, data oauth.StateData, ttl time.Duration) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.entries[state] = entry{data: data, expires: exp}
	return nil
}

func (c *StateCache) Take(ctx context.Context, state string) (oauth.StateData, bool, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[state]
	if !ok {
		return oauth.StateData{}, false, nil
	}
	delete(c.entries, state)
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		return oauth.StateData{}, false, nil
	}
	return e.data, true, nil
}
