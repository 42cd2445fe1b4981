// Package cache is a tag-invalidated read-through cache for backend reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	TagRegions     = "regions"
	TagProducts    = "products"
	TagCategories  = "categories"
	TagCollections = "collections"
)

// CartTag scopes invalidation to a single cart.
func CartTag(cartID string) string { return "cart:" + cartID }

var ErrMiss = errors.New("cache miss")

type Store interface {
	// Get returns ErrMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) error
}

// loadTimeout bounds a shared load, which is detached from the request
// that started it.
const loadTimeout = 30 * time.Second

type Cache struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger

	// mu orders store writes after invalidations: loads check for a newer
	// invalidation of their tags and write while holding the read lock,
	// Invalidate takes the write lock to record one.
	mu          sync.RWMutex
	seq         uint64
	inflight    int
	invalidated map[string]uint64 // tag -> seq of its latest invalidation while loads run
}

func New(store Store, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, ttl: ttl, logger: logger, invalidated: make(map[string]uint64)}
}

// Invalidate drops every entry carrying one of tags. Loads already in flight
// for those tags will not store their result. Store failures are logged only;
// entries then expire on their TTL.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	c.mu.Lock()
	c.seq++
	if c.inflight > 0 {
		for _, t := range tags {
			c.invalidated[t] = c.seq
		}
	}
	c.mu.Unlock()

	if err := c.store.InvalidateTags(ctx, tags...); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "cache_invalidate_failed",
			slog.Any("tags", tags),
			slog.Any("err", err),
		)
	}
}

func (c *Cache) beginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight++
	return c.seq
}

func (c *Cache) endLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.inflight == 0 {
		clear(c.invalidated)
	}
}

// staleSince reports whether one of tags was invalidated after start.
// Callers hold mu.
func (c *Cache) staleSince(start uint64, tags []string) bool {
	if c.seq == start {
		return false
	}
	for _, t := range tags {
		if c.invalidated[t] > start {
			return true
		}
	}
	return false
}

// storeLoaded writes a loaded value unless its tags were invalidated meanwhile.
func (c *Cache) storeLoaded(ctx context.Context, start uint64, key string, raw []byte, tags []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.staleSince(start, tags) {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "cache_set_skipped", slog.String("key", key))
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl, tags...); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "cache_set_failed", slog.String("key", key), slog.Any("err", err))
	}
}

// Fetch returns the cached value for key or runs load and stores its result
// under tags. Concurrent misses for one key share a single load, which runs
// detached from any one caller's cancellation; each caller still returns
// when its own ctx is done. Store errors never fail the call.
func Fetch[T any](ctx context.Context, c *Cache, key string, tags []string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, err := c.store.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.logger.LogAttrs(ctx, slog.LevelWarn, "cache_decode_failed", slog.String("key", key))
	} else if !errors.Is(err, ErrMiss) {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "cache_get_failed", slog.String("key", key), slog.Any("err", err))
	}

	ch := c.group.DoChan(key, func() (any, error) {
		start := c.beginLoad()
		defer c.endLoad()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(v); err == nil {
			c.storeLoaded(loadCtx, start, key, raw, tags)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
