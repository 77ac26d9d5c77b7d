package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/miketud/realestateapp/internal/adapter/metrics"
	"github.com/miketud/realestateapp/internal/domain"
)

const (
	layerMemory = "memory"
	layerRedis  = "redis"

	// redisZipTTL is long because ZIP assignments practically never change.
	redisZipTTL = 30 * 24 * time.Hour
	negativeTTL = 10 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ZipCache is a read-through cache in front of a ZipLookup: an in-memory L1
// and, when rdb is set, a Redis L2. Unknown ZIPs are cached for a short
// while so repeated typos do not reach the provider.
type ZipCache struct {
	rdb     goredis.Cmdable
	source  domain.ZipLookup
	mem     *memoryCache
	clock   clockwork.Clock
	metrics *metrics.CacheMetrics
	group   singleflight.Group
}

// NewZipCache builds the cache. rdb and m may be nil.
func NewZipCache(rdb goredis.Cmdable, source domain.ZipLookup, memTTL time.Duration, clock clockwork.Clock, m *metrics.CacheMetrics) *ZipCache {
	return &ZipCache{
		rdb:     rdb,
		source:  source,
		mem:     newMemoryCache(memTTL, clock),
		clock:   clock,
		metrics: m,
	}
}

// StartEvictionTimer runs a periodic goroutine that evicts expired in-memory entries.
// Returns a stop function that should be deferred.
func (c *ZipCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				evicted := c.mem.evictExpired()
				if evicted > 0 {
					if c.metrics != nil {
						c.metrics.Evicted.Add(float64(evicted))
					}
					slog.Debug("Evicted expired zip cache entries", "count", evicted, "remaining", c.mem.size())
				}

			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

func (c *ZipCache) Lookup(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	// Layer 1: in-memory cache
	if entry, ok := c.mem.get(zip); ok {
		c.hit(layerMemory)
		return entry.result()
	}
	c.miss(layerMemory)

	v, err, _ := c.group.Do(zip, func() (any, error) {
		// shared by every caller waiting on zip
		ctx := context.WithoutCancel(ctx)

		// Layer 2: Redis cache
		if entry, ok := c.getCached(ctx, zip); ok {
			c.hit(layerRedis)
			c.mem.set(zip, entry, c.mem.ttl)
			return entry, nil
		}
		if c.rdb != nil {
			c.miss(layerRedis)
		}

		// Layer 3: provider
		loc, err := c.source.Lookup(ctx, zip)
		switch {
		case errors.Is(err, domain.ErrZipNotFound):
			entry := zipEntry{NotFound: true}
			c.mem.set(zip, entry, negativeTTL)
			c.writeCache(ctx, zip, entry, negativeTTL)
			return entry, nil
		case err != nil:
			return nil, err
		}

		entry := zipEntry{Location: loc}
		c.mem.set(zip, entry, c.mem.ttl)
		c.writeCache(ctx, zip, entry, redisZipTTL)
		return entry, nil
	})
	if err != nil {
		return nil, fmt.Errorf("zip lookup failed: %w", err)
	}
	return v.(zipEntry).result()
}

// Invalidate drops zip from both layers.
func (c *ZipCache) Invalidate(ctx context.Context, zip string) error {
	c.mem.invalidate(zip)
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, zipCacheKey(zip)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate zip cache: %w", err)
	}
	return nil
}

func (c *ZipCache) hit(layer string) {
	if c.metrics != nil {
		c.metrics.Hits.WithLabelValues(layer).Inc()
	}
}

func (c *ZipCache) miss(layer string) {
	if c.metrics != nil {
		c.metrics.Misses.WithLabelValues(layer).Inc()
	}
}

func (c *ZipCache) writeCache(ctx context.Context, zip string, entry zipEntry, ttl time.Duration) {
	if c.rdb == nil {
		return
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		slog.WarnContext(ctx, "Failed to marshal zip for Redis cache", "zip", zip, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, zipCacheKey(zip), encoded, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Failed to populate Redis zip cache", "zip", zip, "error", err)
	}
}

func (c *ZipCache) getCached(ctx context.Context, zip string) (zipEntry, bool) {
	if c.rdb == nil {
		return zipEntry{}, false
	}

	data, err := c.rdb.Get(ctx, zipCacheKey(zip)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.WarnContext(ctx, "Redis zip cache GET failed", "zip", zip, "error", err)
		}
		return zipEntry{}, false
	}

	var entry zipEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.WarnContext(ctx, "Failed to unmarshal cached zip", "zip", zip, "error", err)
		return zipEntry{}, false
	}
	if !entry.NotFound && entry.Location == nil {
		return zipEntry{}, false
	}

	return entry, true
}

func zipCacheKey(zip string) string {
	return "zip_cache:" + zip
}

// zipEntry is what both layers store: a location or a negative result.
type zipEntry struct {
	Location *domain.ZipLocation `json:"location,omitempty"`
	NotFound bool                `json:"not_found,omitempty"`
}

func (e zipEntry) result() (*domain.ZipLocation, error) {
	if e.NotFound {
		return nil, domain.ErrZipNotFound
	}
	loc := *e.Location
	return &loc, nil
}

// memoryCache is an in-memory L1 cache with per-entry expiry.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryCacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type memoryCacheEntry struct {
	entry     zipEntry
	expiresAt time.Time
}

func newMemoryCache(ttl time.Duration, clock clockwork.Clock) *memoryCache {
	return &memoryCache{
		entries: make(map[string]*memoryCacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *memoryCache) get(zip string) (zipEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[zip]
	if !ok {
		return zipEntry{}, false
	}

	if c.clock.Now().After(e.expiresAt) {
		return zipEntry{}, false
	}

	return e.entry, true
}

func (c *memoryCache) set(zip string, entry zipEntry, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[zip] = &memoryCacheEntry{
		entry:     entry,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

func (c *memoryCache) invalidate(zip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, zip)
}

func (c *memoryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *memoryCache) evictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}
