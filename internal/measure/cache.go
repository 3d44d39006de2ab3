package measure

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/navigator"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Cache memoizes widths from an underlying measurer. Hit-testing measures
// every prefix of a line on each click, and most of those prefixes repeat
// between clicks.
type Cache struct {
	next       navigator.MeasureFunc
	cache      *gocache.Cache
	expiration time.Duration
}

// NewCache wraps next with an in-memory cache whose entries expire after
// expiration.
func NewCache(next navigator.MeasureFunc, expiration, cleanupInterval time.Duration) *Cache {
	return &Cache{
		next:       next,
		cache:      gocache.New(expiration, cleanupInterval),
		expiration: expiration,
	}
}

// Measure returns the cached width of text in f, measuring on a miss.
func (c *Cache) Measure(text string, f format.State) float64 {
	key := cacheKey(text, f)

	if value, found := c.cache.Get(key); found {
		if w, ok := value.(float64); ok {
			return w
		}
		log.Error(log.CatCache, "wrong type assertion when getting width", "key", key)
	}

	w := c.next(text, f)
	c.cache.Set(key, w, c.expiration)
	return w
}

// Func returns Measure as a navigator.MeasureFunc.
func (c *Cache) Func() navigator.MeasureFunc {
	return c.Measure
}

// Len returns the number of cached widths, including expired entries not
// yet cleaned up.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

func cacheKey(text string, f format.State) string {
	return f.FontString() + "\x00" + text
}
