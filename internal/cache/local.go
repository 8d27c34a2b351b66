package cache

import (
	"container/list"
	"sync"
	"time"

	"soundstash/internal/metrics"
)

// localEntry links a cache key and its payload to the LRU list element.
type localEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
	// slidingTTL is re-applied on every hit
	slidingTTL time.Duration
	priority   Priority
}

// LocalLRU implements Local with a hard byte quota and LRU eviction.
// Every hit slides the entry's expiry forward and marks it most recently
// used. Under quota pressure, normal-priority entries are evicted before
// high-priority ones.
type LocalLRU struct {
	mu           sync.Mutex
	lru          *list.List
	entries      map[string]*list.Element
	maxBytes     int64
	currentBytes int64
	// now is swappable for expiry tests
	now func() time.Time
}

// NewLocalLRU creates a process-local cache holding at most maxBytes of
// payload data.
func NewLocalLRU(maxBytes int64) *LocalLRU {
	return &LocalLRU{
		lru:      list.New(),
		entries:  make(map[string]*list.Element),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Get returns the cached bytes for key if present and unexpired, sliding
// the entry's expiry forward.
func (c *LocalLRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := element.Value.(*localEntry)
	if c.now().After(entry.expiresAt) {
		c.removeElement(element)
		return nil, false
	}

	entry.expiresAt = c.now().Add(entry.slidingTTL)
	c.lru.MoveToFront(element)
	return entry.data, true
}

// Set stores value under key with a sliding TTL and eviction priority,
// evicting older entries as needed to stay within the byte quota.
func (c *LocalLRU) Set(key string, value []byte, slidingTTL time.Duration, priority Priority) {
	size := int64(len(value))
	if size > c.maxBytes {
		// Larger than the whole quota: not cacheable.
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		entry := element.Value.(*localEntry)
		c.currentBytes += size - int64(len(entry.data))
		entry.data = value
		entry.slidingTTL = slidingTTL
		entry.expiresAt = c.now().Add(slidingTTL)
		entry.priority = priority
		c.lru.MoveToFront(element)
	} else {
		entry := &localEntry{
			key:        key,
			data:       value,
			expiresAt:  c.now().Add(slidingTTL),
			slidingTTL: slidingTTL,
			priority:   priority,
		}
		c.entries[key] = c.lru.PushFront(entry)
		c.currentBytes += size
	}

	for c.currentBytes > c.maxBytes {
		if !c.evictOne() {
			break
		}
	}

	metrics.CacheLocalBytes.Set(float64(c.currentBytes))
}

// Len returns the number of live entries.
func (c *LocalLRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Bytes returns the total payload size currently held.
func (c *LocalLRU) Bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentBytes
}

// evictOne removes the least recently used normal-priority entry, falling
// back to the least recently used entry of any priority. Reports whether
// anything was evicted. Caller must hold the lock.
func (c *LocalLRU) evictOne() bool {
	for element := c.lru.Back(); element != nil; element = element.Prev() {
		if element.Value.(*localEntry).priority == PriorityNormal {
			c.removeElement(element)
			metrics.CacheLocalEvictions.Inc()
			return true
		}
	}

	if element := c.lru.Back(); element != nil {
		c.removeElement(element)
		metrics.CacheLocalEvictions.Inc()
		return true
	}
	return false
}

// removeElement drops an entry from both the list and the index. Caller
// must hold the lock.
func (c *LocalLRU) removeElement(element *list.Element) {
	entry := element.Value.(*localEntry)
	c.lru.Remove(element)
	delete(c.entries, entry.key)
	c.currentBytes -= int64(len(entry.data))
}
