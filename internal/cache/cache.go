// Package cache provides an in-memory TTL cache with ETag support for the
// API's rendered responses, optionally backed by a shared tier (Redis) so
// several API replicas render each table version once.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// TTLs per response kind. Keys include the source file's modification time,
// so a rewritten table is never served stale; the TTL only bounds memory.
const (
	TTLTable = 10 * time.Minute
	TTLGame  = 30 * time.Minute
)

const evictInterval = 5 * time.Minute

// Entries copied down from the shared tier live locally this long.
const sharedLocalTTL = time.Minute

const sharedTimeout = 250 * time.Millisecond

// Shared is a second cache tier consulted on local misses.
type Shared interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool

	shared Shared
	logger *slog.Logger

	hits       atomic.Int64
	sharedHits atomic.Int64
	misses     atomic.Int64
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
func New(enabled bool) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
	}
}

// UseShared adds a shared tier. Shared-tier errors are logged and treated as
// misses.
func (c *Cache) UseShared(s Shared, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.shared = s
	c.logger = logger
}

// StartEviction removes expired entries periodically until ctx is done.
func (c *Cache) StartEviction(ctx context.Context) {
	if !c.enabled {
		return
	}
	go func() {
		ticker := time.NewTicker(evictInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.evict(time.Now())
			}
		}
	}()
}

// Get retrieves a cached value. Returns data, etag, and whether the entry was found.
func (c *Cache) Get(key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()
	if exists && time.Now().Before(e.expiresAt) {
		c.hits.Add(1)
		return e.data, e.etag, true
	}

	if c.shared != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sharedTimeout)
		defer cancel()
		data, ok, err := c.shared.Get(ctx, key)
		if err != nil {
			c.logger.Warn("shared cache get failed", "key", key, "error", err)
		} else if ok {
			c.sharedHits.Add(1)
			return data, c.setLocal(key, data, sharedLocalTTL), true
		}
	}

	c.misses.Add(1)
	return nil, "", false
}

// Set stores a value with a TTL and returns its ETag.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) string {
	if !c.enabled {
		return ComputeETag(data)
	}
	etag := c.setLocal(key, data, ttl)

	if c.shared != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sharedTimeout)
		defer cancel()
		if err := c.shared.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warn("shared cache set failed", "key", key, "error", err)
		}
	}
	return etag
}

func (c *Cache) setLocal(key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(ttl),
	}
	return etag
}

// Stats returns cache statistics.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
		"hits":         c.hits.Load(),
		"shared_hits":  c.sharedHits.Load(),
		"misses":       c.misses.Load(),
		"shared":       c.shared != nil,
	}
}

func (c *Cache) evict(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch reports whether an If-None-Match header matches etag. The
// header may list several tags separated by commas.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
