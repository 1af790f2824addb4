package promos

import (
	"sync"
	"time"

	"idle-redeemer/internal/config"
)

// Cache holds the last scraped code list for a bounded interval so repeated
// runs don't hammer the listing site.
type Cache struct {
	mu        sync.Mutex
	ttl       time.Duration
	codes     []string
	fetchedAt time.Time
	now       func() time.Time
}

func NewCache(cfg *config.Config) *Cache {
	return &Cache{
		ttl: cfg.CodesCacheTTL,
		now: time.Now,
	}
}

func (c *Cache) Get() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return append([]string(nil), c.codes...), true
}

func (c *Cache) Put(codes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.codes = append([]string(nil), codes...)
	c.fetchedAt = c.now()
}
