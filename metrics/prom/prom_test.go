package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/ringmap/cache"
	"github.com/IvanBrykalov/ringmap/orderedmap"
)

// value reads one sample from reg; labels are name/value pairs.
func value(t *testing.T, reg *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for i := 0; i+1 < len(labels); i += 2 {
				found := false
				for _, lp := range m.GetLabel() {
					if lp.GetName() == labels[i] && lp.GetValue() == labels[i+1] {
						found = true
					}
				}
				if !found {
					continue next
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	require.Failf(t, "metric not found", "%s%v", name, labels)
	return 0
}

func TestAdapter_CacheSignals(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "test", "cache", nil)

	c := cache.New[string, int](cache.Options[string, int]{Capacity: 1, Shards: 1, Metrics: a})
	t.Cleanup(func() { _ = c.Close() })

	c.Set("a", 1)
	c.Get("a")
	c.Get("b")
	c.Set("b", 2) // evicts a

	assert.Equal(t, 1.0, value(t, reg, "test_cache_hits_total"), "hits")
	assert.Equal(t, 1.0, value(t, reg, "test_cache_misses_total"), "misses")
	assert.Equal(t, 1.0, value(t, reg, "test_cache_evictions_total", "reason", "policy"), "policy evictions")
	assert.Equal(t, 1.0, value(t, reg, "test_cache_size_entries"), "size_entries")
}

func TestAdapter_OrderedMapSignals(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "test", "omap", nil)

	m := orderedmap.NewWithOptions(orderedmap.Options[string, int]{Metrics: a})
	_, _, h1 := m.Insert("a", 1)
	_, _, h2 := m.Insert("a", 2)
	_, _, h3 := m.Insert("b", 3)
	defer h3.Close()

	assert.Equal(t, 2.0, value(t, reg, "test_omap_inserts_total", "outcome", "new"), "new inserts")
	assert.Equal(t, 1.0, value(t, reg, "test_omap_inserts_total", "outcome", "replaced"), "replaced inserts")
	assert.Equal(t, 2.0, value(t, reg, "test_omap_resident_entries"), "resident")

	_ = h1.Close()
	_ = h2.Close()
	assert.Equal(t, 1.0, value(t, reg, "test_omap_releases_total"), "releases")
	assert.Equal(t, 1.0, value(t, reg, "test_omap_resident_entries"), "resident")
}

func TestAdapter_Register(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "test", "dup", prometheus.Labels{"instance": "x"})

	assert.Panics(t, func() {
		New(reg, "test", "dup", prometheus.Labels{"instance": "x"})
	}, "registering the same collectors twice must panic")
}
