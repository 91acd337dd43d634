package places

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/tripwrap/internal/geo"
)

type cachedPlace struct {
	place     Place
	expiresAt time.Time
}

// CachedLookup wraps a Lookup with an in-memory TTL cache keyed by the
// center rounded to four decimal places (about 11 m).
// Errors are not cached.
type CachedLookup struct {
	inner Lookup
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedPlace
}

// NewCachedLookup returns a caching Lookup. A non-positive ttl defaults to 24h.
func NewCachedLookup(inner Lookup, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedLookup{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedPlace),
	}
}

func cacheKey(p geo.Point) string {
	return fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lng)
}

// Nearby returns a cached place when fresh, otherwise asks the inner Lookup.
func (c *CachedLookup) Nearby(ctx context.Context, center geo.Point) (Place, error) {
	key := cacheKey(center)
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.place, nil
	}

	place, err := c.inner.Nearby(ctx, center)
	if err != nil {
		return Place{}, err
	}

	c.mu.Lock()
	c.entries[key] = cachedPlace{place: place, expiresAt: now.Add(c.ttl)}
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	return place, nil
}
