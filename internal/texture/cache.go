package texture

import (
	"image"
	"sync"
)

// Resolver resolves an image path to a decoded NRGBA image.
type Resolver interface {
	Resolve(path string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe image cache. Failed loads are cached too, so
// a missing background is reported once per path, not once per render.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(string) (*image.NRGBA, error)
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a cache that decodes files with LoadImage.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  LoadImage,
	}
}

// Resolve loads and caches an image by path.
func (c *Cache) Resolve(path string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := c.load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
