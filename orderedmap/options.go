package orderedmap

// Metrics receives entry lifecycle signals. NoopMetrics is used when nil.
type Metrics interface {
	// Inserted is called on every Insert; replaced reports an existing key.
	Inserted(replaced bool)
	// Released is called when an entry is destroyed.
	Released()
	// Resident reports the entry count after it changed.
	Resident(n int)
}

// NoopMetrics discards all signals.
type NoopMetrics struct{}

func (NoopMetrics) Inserted(bool) {}
func (NoopMetrics) Released()     {}
func (NoopMetrics) Resident(int)  {}

var _ Metrics = NoopMetrics{}

// Options configures a Map. The zero value is valid.
type Options[K comparable, V any] struct {
	// Metrics observes inserts and releases; nil => NoopMetrics.
	Metrics Metrics

	// OnEvict is called after an entry has been removed because its last
	// handle was closed. It must not modify the map.
	OnEvict func(k K, v V)
}
