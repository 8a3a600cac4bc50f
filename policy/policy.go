// Package policy defines the contract between a cache shard and its
// eviction strategy.
package policy

// Hooks expose the shard's recency order to a policy. The order is an
// insertion-ordered map: the front is the oldest entry (the next victim),
// the back is the most recently used one.
//
// Concurrency: all hook calls happen under the shard lock.
// Hooks manage only the order; the shard owns entry lifetimes.
type Hooks[K comparable] interface {
	// Touch moves k to the back (most recently used). Absent keys are ignored.
	Touch(k K)
	// Front returns the oldest resident key.
	Front() (K, bool)
	// Len returns the number of resident entries in the shard.
	Len() int
}

// ShardPolicy is a per-shard eviction policy instance bound to shard hooks.
// All methods are invoked under the shard lock.
//
// Semantics:
//   - The shard has already placed k at the back when OnAdd/OnUpdate run.
//   - OnAdd may return an eviction candidate (e.g. the oldest probationary
//     key). The shard evicts it and calls OnRemove for it.
//   - OnGet typically promotes k.
//   - OnRemove lets the policy update internal state (e.g. ghost queues).
type ShardPolicy[K comparable] interface {
	OnAdd(k K) (evict K, ok bool)
	OnGet(k K)
	OnUpdate(k K)
	OnRemove(k K)
}

// Policy is a factory that creates shard-local policy instances
// bound to a particular shard's hooks.
type Policy[K comparable] interface {
	New(Hooks[K]) ShardPolicy[K]
}
