package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a small expiring cache used to absorb duplicate submissions,
// e.g. two concurrent wallet-creation requests for the same user.
type Cache struct {
	c *cache.Cache
}

func NewCache(defaultExpiration, cleanupInterval time.Duration) *Cache {
	return &Cache{
		c: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

// InsertNew stores the value only if the key is absent and reports whether
// the insert happened. The check-and-set is atomic inside go-cache.
func (cm *Cache) InsertNew(k string, x interface{}) bool {
	return cm.c.Add(k, x, cache.DefaultExpiration) == nil
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

func (cm *Cache) Remove(key string) {
	cm.c.Delete(key)
}

func (cm *Cache) Stop() {
	cm.c.Flush()
}
