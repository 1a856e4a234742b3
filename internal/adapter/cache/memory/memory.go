// Package memory implements the redirect cache in process memory.
package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type Cache struct {
	items *cache.Cache
}

// New creates a cache whose expired entries are purged every cleanupInterval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		items: cache.New(defaultTTL, cleanupInterval),
	}
}

func (c *Cache) Get(_ context.Context, shortCode string) (string, error) {
	v, ok := c.items.Get(shortCode)
	if !ok {
		return "", entity.ErrCacheMiss
	}

	return v.(string), nil
}

// Set stores the URL. A zero ttl uses the default TTL of the cache.
func (c *Cache) Set(_ context.Context, shortCode, originalURL string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}

	c.items.Set(shortCode, originalURL, ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, shortCode string) error {
	c.items.Delete(shortCode)
	return nil
}
