package mcpserver

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type cacheEntry struct {
	doc       *loadedDoc
	expiresAt time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// docCacheStore caches loaded documents for the lifetime of the session.
// Entries are kept in recency order, least recently used first, so eviction
// drops the oldest pair. File inputs are keyed by absolute path and mtime,
// content inputs by a SHA-256 of the text.
type docCacheStore struct {
	mu             sync.Mutex
	entries        *orderedmap.OrderedMap[string, *cacheEntry]
	maxSize        int
	sweeperStarted atomic.Bool
}

func newDocCache(maxSize int) *docCacheStore {
	return &docCacheStore{
		entries: orderedmap.New[string, *cacheEntry](),
		maxSize: maxSize,
	}
}

var docCache = newDocCache(cfg.CacheMaxSize)

// get returns the cached document for key, or nil. A hit becomes the most
// recently used entry; an expired entry is dropped.
func (c *docCacheStore) get(key string) *loadedDoc {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	if e.expired(time.Now()) {
		c.entries.Delete(key)
		return nil
	}
	_ = c.entries.MoveToBack(key)
	return e.doc
}

// putWithTTL stores doc under key, evicting least recently used entries to
// stay within maxSize. A maxSize of zero means unbounded.
func (c *docCacheStore) putWithTTL(key string, doc *loadedDoc, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{doc: doc, expiresAt: time.Now().Add(ttl)}
	if _, replaced := c.entries.Set(key, entry); replaced {
		_ = c.entries.MoveToBack(key)
		return
	}
	for c.maxSize > 0 && c.entries.Len() > c.maxSize {
		oldest := c.entries.Oldest()
		logger.Debug("document cache eviction", "key", oldest.Key)
		c.entries.Delete(oldest.Key)
	}
}

// sweep drops every expired entry.
func (c *docCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []string
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.expired(now) {
			stale = append(stale, pair.Key)
		}
	}
	for _, k := range stale {
		c.entries.Delete(k)
	}
}

// startSweeper runs sweep every interval until ctx is done. Only one sweeper
// runs at a time; further calls while it is running return immediately.
func (c *docCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// configure empties the cache and sets its capacity.
func (c *docCacheStore) configure(maxSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSize = maxSize
	c.entries = orderedmap.New[string, *cacheEntry]()
}

// reset empties the cache, keeping its capacity.
func (c *docCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.New[string, *cacheEntry]()
}

func (c *docCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
