package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// DefaultCacheSize bounds the cache when no capacity is configured.
const DefaultCacheSize = 100

// Cache is a bounded translation-result cache keyed by the case-folded,
// trimmed text combined with the target language. Eviction is pure
// insertion order: the oldest write goes first. Error results are never
// stored, and an existing key is never overwritten.
type Cache struct {
	mu       sync.Mutex
	items    map[string]Result
	order    []string
	capacity int
}

// NewCache creates a cache holding up to capacity results.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		items:    make(map[string]Result, capacity),
		capacity: capacity,
	}
}

// cacheKey hashes the normalized text and target language, making hits
// case/whitespace-insensitive but language-sensitive.
func cacheKey(text, targetLanguage string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized + "\x00" + targetLanguage))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for (text, targetLanguage), marked as
// served from cache. Lookup has no side effects on eviction order.
func (c *Cache) Get(text, targetLanguage string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.items[cacheKey(text, targetLanguage)]
	if !ok {
		return Result{}, false
	}
	r.FromCache = true
	return r, true
}

// Put stores a successful result. Error results and already-cached keys
// are ignored. At capacity the single oldest entry is evicted first.
func (c *Cache) Put(text, targetLanguage string, result Result) {
	if result.Failed() {
		return
	}
	result.FromCache = false

	key := cacheKey(text, targetLanguage)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		return
	}
	if len(c.items) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[key] = result
	c.order = append(c.order, key)
}

// Size returns the number of cached results.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]Result, c.capacity)
	c.order = nil
}
