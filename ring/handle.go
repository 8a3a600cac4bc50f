package ring

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// ErrHandleClosed is returned by Close on an already closed handle.
var ErrHandleClosed = errors.New("ring: handle already closed")

// Handle owns one element of a ring. It is not copyable in spirit: exactly
// one owner should call Close, which removes the element in O(1). A handle
// collected without Close has its element removed on a later operation on
// the ring.
type Handle[V any] struct {
	ring    *ring[V]
	node    *node[V]
	cleanup runtime.Cleanup
}

// Value returns the owned element's value. It stays readable after Close.
func (h *Handle[V]) Value() V { return h.node.value }

// Close unlinks the element. If it was the ring's current element, the
// successor becomes current.
func (h *Handle[V]) Close() error {
	if h.ring == nil {
		return ErrHandleClosed
	}
	h.cleanup.Stop()
	h.ring.remove(h.node)
	h.ring = nil
	return nil
}

// Closed reports whether Close has been called.
func (h *Handle[V]) Closed() bool { return h.ring == nil }

// String renders the element with its neighbors, e.g.
// Handle{prev: a, value: b, next: c}.
func (h *Handle[V]) String() string {
	return fmt.Sprintf("Handle%s", h.node)
}
