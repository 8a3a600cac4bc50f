package cache

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/ringmap/internal/singleflight"
	"github.com/IvanBrykalov/ringmap/internal/util"
	"github.com/IvanBrykalov/ringmap/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
var ErrNoLoader = errors.New("cache: no Loader provided")

// cache is a sharded in-memory KV store with a pluggable eviction policy.
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	closed atomic.Bool
	tot    totals

	opt Options[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Policy   -> LRU
//   - Shards <= 0  -> auto, rounded up to the next power of two
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	util.Assert(opt.Capacity > 0, "cache: Capacity must be > 0, got %d", opt.Capacity)
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K]()
	}

	sh := util.ShardCount(opt.Shards)
	c := &cache[K, V]{
		hash: util.KeyHash[K],
		opt:  opt,
	}

	perShardCap := (opt.Capacity + sh - 1) / sh // split capacity evenly (ceil)
	var perShardCost int64
	if opt.MaxCost > 0 {
		perShardCost = (opt.MaxCost + int64(sh) - 1) / int64(sh)
	}
	c.shards = make([]*shard[K, V], sh)
	for i := range c.shards {
		c.shards[i] = newShard[K, V](perShardCap, perShardCost, opt.Policy, opt, &c.tot)
	}
	return c
}

// ---- Cache[K,V] implementation ----

// Add inserts k→v only if absent, using DefaultTTL if set.
// Returns false if the key already exists (no update is performed).
func (c *cache[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Add(k, v, c.defaultDeadline(), c.costOf(v))
}

// Set inserts or updates k→v, using DefaultTTL if set,
// and promotes the entry according to the active policy.
func (c *cache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Set(k, v, c.defaultDeadline(), c.costOf(v))
}

// SetWithTTL inserts or updates k→v with a per-key TTL (relative duration).
// A non-positive ttl disables expiration for this entry.
func (c *cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Set(k, v, c.deadline(ttl), c.costOf(v))
}

// Get returns the value for k and a presence flag.
// On hit, the entry is promoted according to the active policy.
func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Get(k)
}

// Remove deletes k if present and returns true on success.
func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

// Len returns the total number of resident entries across all shards.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Keys returns the resident keys shard by shard.
func (c *cache[K, V]) Keys() []K {
	var keys []K
	for _, s := range c.shards {
		keys = append(keys, s.Keys()...)
	}
	return keys
}

// Stats returns a snapshot of the cumulative counters.
func (c *cache[K, V]) Stats() Stats { return c.tot.stats() }

// Close marks the cache as closed and releases all entries. Future
// operations are ignored. OnEvict is not called for released entries.
func (c *cache[K, V]) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	for _, s := range c.shards {
		s.purge()
	}
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
// If no Loader is configured, returns ErrNoLoader.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	// singleflight: exactly one real load for the key
	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err != nil {
			return v, errors.Wrapf(err, "cache: load %v", k)
		}
		c.Set(k, v)
		return v, nil
	})
}

// ---- helpers ----

// getShard picks a shard by hashing the key.
func (c *cache[K, V]) getShard(k K) *shard[K, V] {
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}

// defaultDeadline returns an absolute deadline based on DefaultTTL.
func (c *cache[K, V]) defaultDeadline() int64 {
	if c.opt.DefaultTTL <= 0 {
		return 0
	}
	return c.deadline(c.opt.DefaultTTL)
}

// deadline converts a relative TTL into an absolute UnixNano deadline.
// A non-positive ttl returns 0 (no expiration).
func (c *cache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	now := time.Now().UnixNano()
	if c.opt.Clock != nil {
		now = c.opt.Clock.NowUnixNano()
	}
	return now + int64(ttl)
}

// costOf computes the per-entry cost (clamped to int32 range).
func (c *cache[K, V]) costOf(v V) int32 {
	if c.opt.Cost == nil {
		return 0
	}
	iv := c.opt.Cost(v)
	if iv < 0 {
		iv = 0
	}
	if iv > math.MaxInt32 {
		iv = math.MaxInt32
	}
	return int32(iv)
}
