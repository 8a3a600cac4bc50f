package cache

import (
	"sync"
	"time"

	"github.com/IvanBrykalov/ringmap/orderedmap"
	"github.com/IvanBrykalov/ringmap/policy"
)

// shard is an independent partition of the cache with its own lock and an
// insertion-ordered map (front = oldest, back = most recently used). The
// shard holds exactly one handle per resident entry; closing it evicts.
type shard[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu      sync.RWMutex
	order   *orderedmap.Map[K, item[V]]
	handles map[K]*orderedmap.Handle[K, item[V]]
	cost    int64 // total cost (if MaxCost is enabled)
	cap     int   // per-shard entry capacity
	maxCost int64 // per-shard cost limit (0 = disabled)

	pol policy.ShardPolicy[K]
	opt Options[K, V]
	tot *totals
}

// newShard initializes a shard with per-shard limits, policy factory, and options.
func newShard[K comparable, V any](capacity int, maxCost int64, pol policy.Policy[K], opt Options[K, V], tot *totals) *shard[K, V] {
	s := &shard[K, V]{
		order:   orderedmap.New[K, item[V]](),
		handles: make(map[K]*orderedmap.Handle[K, item[V]], capacity),
		cap:     capacity,
		maxCost: maxCost,
		opt:     opt,
		tot:     tot,
	}
	s.pol = pol.New(shardHooks[K, V]{s: s})
	return s
}

// Add inserts a NEW entry (no update) at the back.
// ttl is an absolute UnixNano deadline (0 = no TTL); cost is the logical weight (0 = equal).
// Returns false if the key already exists.
func (s *shard[K, V]) Add(k K, v V, ttl int64, cost int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.handles[k]; exists {
		return false
	}
	s.admitLocked(k, item[V]{val: v, exp: ttl, cost: cost})
	return true
}

// Set inserts or updates an entry and promotes it according to the policy.
func (s *shard[K, V]) Set(k K, v V, ttl int64, cost int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[k]; !ok {
		s.admitLocked(k, item[V]{val: v, exp: ttl, cost: cost})
		return
	}

	// Re-insert moves the key to the back; the extra handle is not needed.
	prev, _, h := s.order.Insert(k, item[V]{val: v, exp: ttl, cost: cost})
	_ = h.Close()
	s.addCost(int64(cost) - int64(prev.cost))

	s.pol.OnUpdate(k)
	s.enforceLimitsLocked()
}

// Get returns the value and promotes the entry according to the policy.
// TTL: if expired, the entry is evicted and a miss is returned.
func (s *shard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.order.Get(k)
	if !ok {
		s.miss()
		var zero V
		return zero, false
	}
	if s.expired(it) {
		s.evictLocked(k, EvictTTL)
		s.reportSize()
		s.miss()
		var zero V
		return zero, false
	}

	s.pol.OnGet(k)
	s.tot.hits.Add(1)
	s.opt.Metrics.Hit()
	return it.val, true
}

// Remove deletes an entry by key. Returns true if the entry existed.
// Explicit removal is not counted as an eviction.
func (s *shard[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[k]; !ok {
		return false
	}
	s.pol.OnRemove(k)
	s.dropLocked(k)
	s.reportSize()
	return true
}

// Len returns the number of resident entries in this shard.
func (s *shard[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

// Keys returns resident keys from oldest to newest.
func (s *shard[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, s.order.Len())
	for k := range s.order.Keys() {
		keys = append(keys, k)
	}
	return keys
}

// purge releases every entry without eviction callbacks.
func (s *shard[K, V]) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.handles {
		s.pol.OnRemove(k)
		s.dropLocked(k)
	}
	s.reportSize()
}

// -------------------- internals (mu held) --------------------

// admitLocked inserts a new entry at the back and lets the policy react.
func (s *shard[K, V]) admitLocked(k K, it item[V]) {
	_, _, h := s.order.Insert(k, it)
	s.handles[k] = h
	s.tot.entries.Add(1)
	s.addCost(int64(it.cost))

	// Let the policy suggest an eviction.
	if ev, ok := s.pol.OnAdd(k); ok {
		s.evictLocked(ev, EvictPolicy)
	}
	s.enforceLimitsLocked()
}

func (s *shard[K, V]) expired(it item[V]) bool {
	if it.exp == 0 {
		return false
	}
	return s.now() > it.exp
}

func (s *shard[K, V]) now() int64 {
	if s.opt.Clock != nil {
		return s.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

func (s *shard[K, V]) miss() {
	s.tot.misses.Add(1)
	s.opt.Metrics.Miss()
}

func (s *shard[K, V]) addCost(d int64) {
	s.cost += d
	s.tot.cost.Add(d)
}

// touch moves k to the back by re-inserting its current item.
func (s *shard[K, V]) touch(k K) {
	it, ok := s.order.Get(k)
	if !ok {
		return
	}
	_, _, h := s.order.Insert(k, it)
	_ = h.Close()
}

// front returns the oldest key.
func (s *shard[K, V]) front() (k K, ok bool) {
	for k = range s.order.Keys() {
		return k, true
	}
	return k, false
}

// dropLocked closes the shard's handle for k, which removes the entry.
func (s *shard[K, V]) dropLocked(k K) (item[V], bool) {
	h, ok := s.handles[k]
	if !ok {
		return item[V]{}, false
	}
	it, _ := s.order.Get(k)
	delete(s.handles, k)
	_ = h.Close()
	s.tot.entries.Add(-1)
	s.addCost(-int64(it.cost))
	return it, true
}

// evictLocked removes k, updates metrics/counters, and calls OnEvict.
func (s *shard[K, V]) evictLocked(k K, reason EvictReason) {
	s.pol.OnRemove(k)
	it, ok := s.dropLocked(k)
	if !ok {
		return
	}
	s.tot.evicts.Add(1)
	s.opt.Metrics.Evict(reason)
	if cb := s.opt.OnEvict; cb != nil {
		cb(k, it.val, reason)
	}
}

// enforceLimitsLocked evicts from the front until both count and cost limits are satisfied.
func (s *shard[K, V]) enforceLimitsLocked() {
	for s.order.Len() > s.cap {
		k, ok := s.front()
		if !ok {
			break
		}
		s.evictLocked(k, EvictPolicy)
	}
	if s.maxCost > 0 {
		for s.cost > s.maxCost {
			k, ok := s.front()
			if !ok {
				break
			}
			s.evictLocked(k, EvictCapacity)
		}
	}
	s.reportSize()
}

func (s *shard[K, V]) reportSize() {
	s.opt.Metrics.Size(int(s.tot.entries.Load()), s.tot.cost.Load())
}

// -------------------- policy hooks --------------------

// shardHooks adapts the shard's order to policy.Hooks.
// Policies call hooks while the shard lock is held.
type shardHooks[K comparable, V any] struct{ s *shard[K, V] }

func (h shardHooks[K, V]) Touch(k K)        { h.s.touch(k) }
func (h shardHooks[K, V]) Front() (K, bool) { return h.s.front() }
func (h shardHooks[K, V]) Len() int         { return h.s.order.Len() }
