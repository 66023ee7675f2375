package catalog

import (
	"sync"

	"tillfront/internal/model"
)

// Cache holds the last-fetched product snapshot. Replaced wholesale on
// every refresh; there is no partial merge.
type Cache interface {
	ReplaceAll(products []model.Product) error
	Get(id string) (model.Product, bool)
	All() ([]model.Product, error)
	Len() int
}

// MemoryCache is the single-terminal backend: a mutex-guarded map plus
// the fetch ordering, so All returns products in the order the server
// sent them.
type MemoryCache struct {
	mu    sync.RWMutex
	byID  map[string]model.Product
	order []string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{byID: make(map[string]model.Product)}
}

func (c *MemoryCache) ReplaceAll(products []model.Product) error {
	byID := make(map[string]model.Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			order = append(order, p.ID)
		}
		byID[p.ID] = p
	}
	c.mu.Lock()
	c.byID = byID
	c.order = order
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Get(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *MemoryCache) All() ([]model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
