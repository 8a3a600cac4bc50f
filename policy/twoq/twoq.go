// Package twoq implements the 2Q eviction policy.
package twoq

import (
	"github.com/IvanBrykalov/ringmap/policy"
)

// twoQ implements the 2Q eviction policy.
//
// Resident queues:
//   - A1in (young queue): its own FIFO of keys; admits first-time entries.
//   - Am (mature queue): keys not in A1in; ordering is the shard's own order.
//
// Ghost A1out: keys only (no values). It remembers recently evicted A1in keys
// and gives them a second chance (bypass A1in on re-admission).
//
// Concurrency: all methods are called under the shard lock.
type twoQ[K comparable] struct {
	h policy.Hooks[K]

	capIn    int // A1in capacity (per-shard)
	capGhost int // A1out (ghost) capacity (per-shard)

	in    *queue[K]
	ghost *queue[K]
}

// New constructs a 2Q policy factory.
// Common choices: capIn ≈ 25% of shard capacity; capGhost ≈ 50–100% of shard capacity.
// When used with a sharded cache, pass per-shard sizes here.
func New[K comparable](capIn, capGhost int) policy.Policy[K] {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return twoQPolicy[K]{capIn: capIn, capGhost: capGhost}
}

type twoQPolicy[K comparable] struct {
	capIn    int
	capGhost int
}

func (p twoQPolicy[K]) New(h policy.Hooks[K]) policy.ShardPolicy[K] {
	return &twoQ[K]{
		h:        h,
		capIn:    p.capIn,
		capGhost: p.capGhost,
		in:       newQueue[K](),
		ghost:    newQueue[K](),
	}
}

// OnAdd admission rules:
//   - A key remembered in A1out skips A1in and goes straight to Am; its
//     ghost is dropped.
//   - Otherwise the key is admitted into A1in.
//   - If A1in overflows, its oldest key is returned for eviction.
func (q *twoQ[K]) OnAdd(k K) (evict K, ok bool) {
	if q.ghost.remove(k) {
		return evict, false
	}
	q.in.push(k)
	if q.in.len() > q.capIn {
		return q.in.oldest()
	}
	return evict, false
}

// OnGet promotes an A1in key to Am and moves it to the back.
func (q *twoQ[K]) OnGet(k K) {
	q.in.remove(k)
	q.h.Touch(k)
}

// OnUpdate counts as recent use; the shard's re-insert already moved k.
func (q *twoQ[K]) OnUpdate(k K) { q.in.remove(k) }

// OnRemove remembers keys leaving A1in as ghosts, trimmed to capGhost.
// Removals from Am do not populate ghosts.
func (q *twoQ[K]) OnRemove(k K) {
	if !q.in.remove(k) {
		return
	}
	q.ghost.push(k)
	for q.ghost.len() > q.capGhost {
		old, ok := q.ghost.oldest()
		if !ok {
			break
		}
		q.ghost.remove(old)
	}
}
