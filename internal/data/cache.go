package data

import (
	"fmt"
	"os"
	"sync"
	"time"

	"solar-yield/internal/model"
)

// CacheEntry holds one cached TMY series.
type CacheEntry struct {
	Records   []model.WeatherRecord
	ExpiresAt time.Time
}

// TMYCache is an in-memory cache for PVGIS TMY responses. A TMY is a
// static synthetic year, so long TTLs are safe; the cache exists to
// spare PVGIS repeated identical downloads when many predictions hit
// the same site.
type TMYCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *TMYCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled via
// ENABLE_TMY_CACHE=true, nil otherwise.
func GetCache() *TMYCache {
	if os.Getenv("ENABLE_TMY_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 24 * time.Hour
		if ttlStr := os.Getenv("TMY_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &TMYCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// CacheKey buckets coordinates to the PVGIS grid resolution so nearby
// requests share an entry.
func CacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("%.3f,%.3f", latitude, longitude)
}

// Get retrieves a cached series if present and not expired.
func (c *TMYCache) Get(key string) ([]model.WeatherRecord, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Records, true
}

// Set stores a series in the cache.
func (c *TMYCache) Set(key string, records []model.WeatherRecord) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Records:   records,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *TMYCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup evicts expired entries periodically.
func (c *TMYCache) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
