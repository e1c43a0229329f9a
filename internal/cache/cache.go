// Package cache keeps rendered chart images keyed by chart name and data version.
package cache

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Image is a rendered chart.
type Image struct {
	ContentType string
	Body        []byte
}

// entry wraps an image with expiry and insertion order tracking.
type entry struct {
	img       *Image
	expiry    time.Time
	insertIdx int64
}

// Recorder counts cache hits and misses.
type Recorder interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
}

// ChartCache caches rendered charts so repeated page loads do not re-render.
// Keys are "name:version"; a new data version yields a new key.
type ChartCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64

	group    singleflight.Group
	recorder Recorder
}

// New creates a ChartCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ChartCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &ChartCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// WithRecorder attaches a hit/miss recorder.
func (c *ChartCache) WithRecorder(r Recorder) *ChartCache {
	c.recorder = r
	return c
}

// MakeKey builds a cache key from a chart name and a data version.
func MakeKey(name, version string) string {
	return name + ":" + version
}

// Get returns a cached image if found and not expired.
func (c *ChartCache) Get(key string) (*Image, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.img, true
}

// Set stores an image. Evicts the oldest entry if at capacity.
func (c *ChartCache) Set(key string, img *Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		img:       img,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// GetOrRender returns the cached image for key or renders, stores and
// returns it. Concurrent misses on the same key share one render.
// Render errors are not cached.
func (c *ChartCache) GetOrRender(key string, render func() (*Image, error)) (*Image, error) {
	if img, ok := c.Get(key); ok {
		c.record(true)
		return img, nil
	}
	c.record(false)

	v, err, _ := c.group.Do(key, func() (any, error) {
		if img, ok := c.Get(key); ok {
			return img, nil
		}
		img, err := render()
		if err != nil {
			return nil, err
		}
		c.Set(key, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Image), nil
}

// InvalidatePrefix removes all entries whose key starts with prefix.
func (c *ChartCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *ChartCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *ChartCache) record(hit bool) {
	if c.recorder == nil {
		return
	}
	if hit {
		c.recorder.RecordCacheHit("charts")
	} else {
		c.recorder.RecordCacheMiss("charts")
	}
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ChartCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
