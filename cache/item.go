package cache

// item is the value stored in a shard's ordered map. The map owns key,
// position and lifetime; item carries the payload and accounting data.
type item[V any] struct {
	val V

	// Absolute expiration deadline in UnixNano.
	// Zero means "no TTL".
	exp int64

	// Logical "cost" used when MaxCost is enabled.
	cost int32
}
