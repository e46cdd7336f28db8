package detect

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the detection cache
type CacheConfig struct {
	// MaxSize is the maximum number of texts to remember. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached results. 0 means no expiration.
	TTL time.Duration
}

// Cache memoises detection results. Documents repeat the same short runs
// (signatures, footers, table headers) often enough for this to pay off.
// A Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	lru      *list.List
	config   CacheConfig
	detector Detector

	hits   int
	misses int
}

type cacheEntry struct {
	key     string
	result  string
	expiry  time.Time
	element *list.Element
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Size   int
	Hits   int
	Misses int
}

// NewCache creates a cache in front of the package's own detector.
func NewCache(config CacheConfig) *Cache {
	return NewCacheFor(Default, config)
}

// NewCacheFor creates a cache in front of an arbitrary detector.
func NewCacheFor(detector Detector, config CacheConfig) *Cache {
	return &Cache{
		entries:  make(map[string]*cacheEntry),
		lru:      list.New(),
		config:   config,
		detector: detector,
	}
}

// Detect returns the cached annotation for text, computing and storing it
// on a miss.
func (c *Cache) Detect(text string, opts Options) string {
	// Check if caching is disabled
	if c.config.MaxSize == 0 {
		return c.detector.Detect(text, opts)
	}

	key := opts.key() + "\x00" + text
	if result, ok := c.get(key); ok {
		return result
	}

	result := c.detector.Detect(text, opts)
	c.set(key, result)
	return result
}

func (c *Cache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return "", false
	}

	// Check if entry has expired
	if c.config.TTL > 0 && time.Now().After(entry.expiry) {
		c.removeEntry(entry)
		c.misses++
		return "", false
	}

	c.lru.MoveToFront(entry.element)
	c.hits++
	return entry.result, true
}

func (c *Cache) set(key, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := time.Time{}
	if c.config.TTL > 0 {
		expiry = time.Now().Add(c.config.TTL)
	}

	if existing, exists := c.entries[key]; exists {
		existing.result = result
		existing.expiry = expiry
		c.lru.MoveToFront(existing.element)
		return
	}

	// Evict least recently used
	for c.lru.Len() >= c.config.MaxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.removeEntry(oldest.Value.(*cacheEntry))
	}

	entry := &cacheEntry{key: key, result: result, expiry: expiry}
	entry.element = c.lru.PushFront(entry)
	c.entries[key] = entry
}

func (c *Cache) removeEntry(entry *cacheEntry) {
	delete(c.entries, entry.key)
	c.lru.Remove(entry.element)
}

// Clear removes all entries and resets the statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.lru.Init()
	c.hits, c.misses = 0, 0
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{Size: c.lru.Len(), Hits: c.hits, Misses: c.misses}
}
