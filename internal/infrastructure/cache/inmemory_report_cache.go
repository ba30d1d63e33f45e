package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryReportCache is a process-local ReportCache. Suitable for
// single-instance deployments and testing; cached payloads are not shared
// across instances.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewInMemoryReportCache creates a new in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached payload and whether the key was present
func (c *InMemoryReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores the payload under the key with the given TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	// Opportunistic cleanup keeps the map from growing without bound
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	return nil
}

// Invalidate removes the key
func (c *InMemoryReportCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Ensure InMemoryReportCache implements ReportCache
var _ shared.ReportCache = (*InMemoryReportCache)(nil)
