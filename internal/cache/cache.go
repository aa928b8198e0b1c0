// Package cache keeps read-mostly catalog query results in memory.
package cache

import (
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// JSONCache stores JSON-encoded values in a freecache arena with a fixed TTL.
type JSONCache struct {
	cache *freecache.Cache
	ttl   time.Duration
}

func NewJSONCache(sizeMB int, ttl time.Duration) *JSONCache {
	if sizeMB <= 0 {
		sizeMB = 16
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &JSONCache{
		cache: freecache.NewCache(sizeMB * megabyte),
		ttl:   ttl,
	}
}

// Get decodes the cached value for key into dst. It reports false on a miss or a decode failure.
func (c *JSONCache) Get(key string, dst any) bool {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Errorf("cache: unmarshal %q: %s", key, err)
		return false
	}
	return true
}

// Set stores value under key. Failures are logged and otherwise ignored; the cache is best effort.
func (c *JSONCache) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("cache: marshal %q: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), raw, int(c.ttl.Seconds())); err != nil {
		log.Debugf("cache: set %q: %s", key, err)
	}
}

func (c *JSONCache) Clear() {
	c.cache.Clear()
}
