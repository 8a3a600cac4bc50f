// Package prom exports cache and ordered-map signals to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/ringmap/cache"
	"github.com/IvanBrykalov/ringmap/orderedmap"
)

// Adapter implements cache.Metrics and orderedmap.Metrics and exports
// Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	evicts   *prometheus.CounterVec
	sizeEnt  prometheus.Gauge
	sizeCost prometheus.Gauge

	inserts  *prometheus.CounterVec
	releases prometheus.Counter
	resident prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		hits:   counter("hits_total", "Cache hits"),
		misses: counter("misses_total", "Cache misses"),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Cache evictions by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		sizeEnt:  gauge("size_entries", "Number of resident cache entries"),
		sizeCost: gauge("size_cost", "Total resident cost"),

		inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "inserts_total",
				Help:        "Ordered map inserts by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		releases: counter("releases_total", "Ordered map entries destroyed by their last handle"),
		resident: gauge("resident_entries", "Number of live ordered map entries"),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt, a.sizeCost, a.inserts, a.releases, a.resident)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter with a reason label.
func (a *Adapter) Evict(r cache.EvictReason) {
	a.evicts.WithLabelValues(r.String()).Inc()
}

// Size updates gauges for the number of entries and total cost.
func (a *Adapter) Size(entries int, cost int64) {
	a.sizeEnt.Set(float64(entries))
	a.sizeCost.Set(float64(cost))
}

// Inserted counts an ordered map insert, labelled "new" or "replaced".
func (a *Adapter) Inserted(replaced bool) {
	outcome := "new"
	if replaced {
		outcome = "replaced"
	}
	a.inserts.WithLabelValues(outcome).Inc()
}

// Released counts a destroyed ordered map entry.
func (a *Adapter) Released() { a.releases.Inc() }

// Resident sets the live entry gauge.
func (a *Adapter) Resident(n int) { a.resident.Set(float64(n)) }

// Compile-time checks.
var (
	_ cache.Metrics      = (*Adapter)(nil)
	_ orderedmap.Metrics = (*Adapter)(nil)
)
