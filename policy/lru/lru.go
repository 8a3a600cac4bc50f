// Package lru implements the LRU eviction policy.
package lru

import "github.com/IvanBrykalov/ringmap/policy"

// lru is a classic move-to-back Least-Recently-Used policy.
// It delegates order manipulation to policy.Hooks provided by the shard.
type lru[K comparable] struct {
	h policy.Hooks[K]
}

type lruPolicy[K comparable] struct{}

// New returns a Policy factory that constructs per-shard LRU instances.
func New[K comparable]() policy.Policy[K] { return lruPolicy[K]{} }

// New implements policy.Policy by binding shard hooks and returning
// a shard-local policy instance.
func (lruPolicy[K]) New(h policy.Hooks[K]) policy.ShardPolicy[K] {
	return &lru[K]{h: h}
}

// OnAdd never chooses a victim; the shard enforces capacity/cost limits
// by evicting from the front.
func (p *lru[K]) OnAdd(K) (evict K, ok bool) { return evict, false }

// OnGet promotes the entry to the back.
func (p *lru[K]) OnGet(k K) { p.h.Touch(k) }

// OnUpdate is a no-op: an update re-inserts the key, which already moves it
// to the back.
func (p *lru[K]) OnUpdate(K) {}

// OnRemove is a no-op for pure LRU (nothing to clean up in policy state).
func (p *lru[K]) OnRemove(K) {}
