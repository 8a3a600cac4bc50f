package util

import "runtime"

// maxShards bounds the automatic shard count.
const maxShards = 256

// NextPow2 returns the smallest power of two >= x (1 for x <= 1).
// Results that would overflow 64 bits are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// ShardCount normalizes a requested shard count to a power of two.
// n <= 0 picks nextPow2(2*GOMAXPROCS) clamped to [1..256].
func ShardCount(n int) int {
	if n > 0 {
		return int(NextPow2(uint64(n)))
	}
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	auto := int(NextPow2(uint64(p * 2)))
	if auto > maxShards {
		auto = maxShards
	}
	return auto
}

// ShardIndex maps a hash onto [0, shards). shards must be a power of two.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	return int(hash & uint64(shards-1))
}
