package ogcard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// ImageCache is an in-memory TTL cache of rendered cards, keyed by the
// request that produced them. It sits in front of the generator; the
// pipeline itself never caches.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	svg     string
	fetched time.Time
}

// NewImageCache creates an ImageCache whose entries live for ttl.
func NewImageCache(ttl time.Duration) *ImageCache {
	return &ImageCache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func (c *ImageCache) valid(e cacheEntry) bool {
	return time.Since(e.fetched) < c.ttl
}

// Get returns the cached SVG for key if it has not expired.
func (c *ImageCache) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.valid(e) {
		return "", false
	}
	return e.svg, true
}

// Put stores svg under key. Expired entries are swept on every write.
func (c *ImageCache) Put(key, svg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{svg: svg, fetched: time.Now()}
}

// Invalidate clears the cache so the next read triggers a fresh render.
func (c *ImageCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of entries, expired or not.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheKey derives a stable key from a template name, its props and the
// generation config. encoding/json sorts map keys, so equal inputs hash
// equally.
func CacheKey(template string, props TemplateProps, cfg GenerationConfig) (string, error) {
	b, err := json.Marshal(struct {
		Template string           `json:"t"`
		Props    TemplateProps    `json:"p"`
		Config   GenerationConfig `json:"c"`
	}{template, props, cfg})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
