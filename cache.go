package tiled

import "sync"

// ResourceCache stores parsed tilesets keyed by cleaned document path.
// Lookups must be idempotent: a stored tileset is returned unchanged on
// every later lookup for the same key. The parser itself issues no
// concurrent calls; any locking needed to share a cache across goroutines
// belongs to the implementation.
type ResourceCache interface {
	Tileset(path string) *Tileset
	StoreTileset(path string, ts *Tileset)
}

// MemoryCache is a ResourceCache backed by a mutex-guarded map, safe for
// sharing across goroutines.
type MemoryCache struct {
	mu       sync.RWMutex
	tilesets map[string]*Tileset
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{tilesets: make(map[string]*Tileset)}
}

// Tileset returns the cached tileset for path, or nil.
func (c *MemoryCache) Tileset(path string) *Tileset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tilesets[path]
}

// StoreTileset records ts under path, replacing any earlier entry.
func (c *MemoryCache) StoreTileset(path string, ts *Tileset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tilesets[path] = ts
}
