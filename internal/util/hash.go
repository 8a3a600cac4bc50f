// Package util contains internal helpers (hashing, sharding, assertions).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"encoding/binary"
	"fmt"

	metro "github.com/dgryski/go-metro"
)

// hashSeed is fixed so that shard placement is stable across runs.
const hashSeed = 0x9e3779b97f4a7c15

// KeyHash hashes common key types with metro hash.
// Supported: string, []byte, [16|32|64]byte, all int/uint widths, uintptr, fmt.Stringer.
// Panics on anything else; convert such keys to string upstream.
func KeyHash[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return metro.Hash64Str(v, hashSeed)
	case [16]byte:
		return metro.Hash64(v[:], hashSeed)
	case [32]byte:
		return metro.Hash64(v[:], hashSeed)
	case [64]byte:
		return metro.Hash64(v[:], hashSeed)

	case uint8:
		return hashUint64(uint64(v))
	case uint16:
		return hashUint64(uint64(v))
	case uint32:
		return hashUint64(uint64(v))
	case uint64:
		return hashUint64(v)
	case uint:
		return hashUint64(uint64(v))
	case uintptr:
		return hashUint64(uint64(v))
	case int8:
		return hashUint64(uint64(uint8(v)))
	case int16:
		return hashUint64(uint64(uint16(v)))
	case int32:
		return hashUint64(uint64(uint32(v)))
	case int64:
		return hashUint64(uint64(v))
	case int:
		return hashUint64(uint64(v))

	case fmt.Stringer:
		return metro.Hash64Str(v.String(), hashSeed)
	default:
		panic(fmt.Sprintf("util.KeyHash: unsupported key type %T; convert key to string", k))
	}
}

func hashUint64(u uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	return metro.Hash64(b[:], hashSeed)
}
