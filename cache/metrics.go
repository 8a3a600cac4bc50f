package cache

import "sync/atomic"

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                         {}
func (NoopMetrics) Miss()                        {}
func (NoopMetrics) Evict(EvictReason)            {}
func (NoopMetrics) Size(entries int, cost int64) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}

// totals are cache-wide counters shared by all shards.
type totals struct {
	entries atomic.Int64
	cost    atomic.Int64

	hits   atomic.Uint64
	misses atomic.Uint64
	evicts atomic.Uint64
}

func (t *totals) stats() Stats {
	return Stats{
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Evictions: t.evicts.Load(),
	}
}
