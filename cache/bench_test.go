package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/ringmap/policy"
	"github.com/IvanBrykalov/ringmap/policy/twoq"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// RunParallel spawns GOMAXPROCS goroutines. Every hit re-inserts the key
// into its shard's ordered map, so reads are not free.
func benchmarkMix[K comparable](b *testing.B, readsPct int, pol policy.Policy[K], key func(int) K) {
	c := New[K, int](Options[K, int]{
		Capacity: 100_000,
		Policy:   pol,
	})
	b.Cleanup(func() { _ = c.Close() })

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		c.Set(key(i), i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := key(i & keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Set(k, i)
			}
			i++
		}
	})
}

func strKey(i int) string { return "k:" + strconv.Itoa(i) }
func intKey(i int) int    { return i }

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, 90, nil, strKey) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, 50, nil, strKey) }

func BenchmarkCache_IntKeys_90r10w(b *testing.B) { benchmarkMix(b, 90, nil, intKey) }
func BenchmarkCache_IntKeys_50r50w(b *testing.B) { benchmarkMix(b, 50, nil, intKey) }

func BenchmarkCache_2Q_90r10w(b *testing.B) {
	benchmarkMix(b, 90, twoq.New[string](200, 400), strKey)
}
