// Package cache provides a generic, sharded in-memory cache built on
// orderedmap. It has pluggable eviction policies (LRU by default), per-entry
// TTL, optional singleflight loading, lightweight metrics hooks, and
// cost-based capacity.
//
// Design
//
//   - Concurrency: the cache is split into shards, each protected by an
//     RWMutex. The default shard count is a power of two near
//     2*GOMAXPROCS. Keys are placed by a metro hash.
//
//   - Storage: each shard keeps an orderedmap.Map whose iteration order is
//     the recency order (front = oldest, back = most recently used). The
//     shard owns exactly one handle per entry; closing it is the only way an
//     entry leaves the map. Promotion is a re-insert of the same key.
//
//   - Policies: eviction policy is pluggable via the policy package.
//     LRU is the default. A 2Q policy is provided (resists scan pollution).
//
//   - TTL: entries can have per-item deadlines (UnixNano). Expiration is lazy
//     on read.
//
//   - Cost/MaxCost: besides entry count (Capacity), you may account a user-defined
//     "cost" per value (Options.Cost) and enforce a global MaxCost. Shards split
//     the MaxCost budget evenly.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using singleflight.
//     If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals. Size
//     reports cache-wide totals. Stats returns cumulative counters.
//
//   - Callbacks: Options.OnEvict(k, v, reason) is called for every eviction
//     (reason is one of EvictPolicy, EvictTTL, EvictCapacity).
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// With GetOrLoad (singleflight)
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Using 2Q
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Policy:   twoq.New[string](12_500 /* A1in ≈ 25% */, 25_000 /* ghosts */),
//	})
//
// Exporting metrics
//
//	m := prom.New(nil, "ringmap", "cache", nil) // implements Metrics
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
package cache
