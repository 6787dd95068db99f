package origincache

import (
	"sync"
	"time"

	"github.com/dkrasnov/backoffice/internal/logger"
)

// Storage defines the minimal database operation needed to (re)build the
// cache. Admin CRUD on trusted origins belongs to the service layer.
type Storage interface {
	ListOriginUrls() ([]string, error)
}

// Cache holds the in-memory view of the trusted-origin set consulted on
// every inbound request. The set is rebuilt wholesale and swapped under the
// lock, so readers observe either the old or the new complete set, never a
// partially patched one.
type Cache struct {
	storage        Storage
	mu             sync.RWMutex
	allowed        map[string]struct{}
	lastUpdateTime time.Time
}

func New(storage Storage) *Cache {
	return &Cache{
		storage: storage,
		allowed: make(map[string]struct{}),
	}
}

// Update fetches the full trusted-origin set and replaces the snapshot.
// On storage failure the previous snapshot stays live: a degraded refresh
// must never clear trust or widen it.
func (c *Cache) Update() error {
	urls, err := c.storage.ListOriginUrls()
	if err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		allowed[u] = struct{}{}
	}

	c.mu.Lock()
	c.allowed = allowed
	c.lastUpdateTime = time.Now()
	c.mu.Unlock()

	logger.Log.Info("trusted origin cache updated",
		"component", "origin_cache",
		"entries", len(allowed))
	return nil
}

// IsAllowed reports whether a request origin may proceed. An empty origin
// means a same-origin or non-browser request, which CORS never blocks. A
// non-empty origin must exactly match a cached entry.
func (c *Cache) IsAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.allowed[origin]
	return ok
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.allowed)
}
