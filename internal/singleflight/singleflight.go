// Package singleflight adapts golang.org/x/sync/singleflight to typed keys
// and values and to context cancellation.
package singleflight

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Group coalesces concurrent function calls for the same key K so that
// the supplied fn is executed at most once. Other concurrent callers
// wait for the shared result.
//
// Keys are identified by their fmt.Sprint form, so two keys that print
// the same share a flight.
//
// Concurrency notes:
//   - The first caller for a given key starts fn; every caller (that one
//     included) waits on the shared result.
//   - Cancelling ctx unblocks only that caller; it does NOT cancel fn.
//     If you need cancellation of the work, pass ctx into fn and handle
//     it there.
type Group[K comparable, V any] struct {
	g singleflight.Group
}

// Do runs fn once for the given key. Concurrent calls with the same key
// wait for the shared result. If ctx is cancelled first, Do returns
// ctx.Err() while fn keeps running for the remaining callers.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	ch := g.g.DoChan(fmt.Sprint(key), func() (any, error) {
		v, err := fn()
		return v, err
	})

	var zero V
	select {
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(V)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Forget makes the next Do for key start a new call instead of joining
// the in-flight one.
func (g *Group[K, V]) Forget(key K) { g.g.Forget(fmt.Sprint(key)) }
