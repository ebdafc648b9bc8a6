package cache

import (
	"sync"

	"weatherdash.app/models"
)

// MemoryCache holds the current snapshot in process memory. The snapshot is
// swapped as a whole under the lock, and published snapshots are treated as
// immutable, so readers can never see a partially replaced one.
type MemoryCache struct {
	mutex    sync.RWMutex
	snapshot *models.Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Publish(snapshot *models.Snapshot) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.snapshot = snapshot
	return nil
}

func (c *MemoryCache) Current() (*models.Snapshot, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.snapshot == nil {
		return nil, false
	}
	return c.snapshot, true
}
