package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- test doubles ---

type mockHooks[K comparable] struct {
	touchCnt  int
	lastTouch K

	front K
	ok    bool
	n     int
}

func (h *mockHooks[K]) Touch(k K)        { h.touchCnt++; h.lastTouch = k }
func (h *mockHooks[K]) Front() (K, bool) { return h.front, h.ok }
func (h *mockHooks[K]) Len() int         { return h.n }

// --- tests ---

// OnAdd should never propose an eviction or touch the order.
func TestLRU_OnAdd_NoEvict(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{front: "old", ok: true, n: 10}
	p := New[string]().New(h) // shard-local policy

	ev, ok := p.OnAdd("k1")
	assert.False(t, ok, "OnAdd must not return evict candidate for LRU, got %v", ev)
	assert.Zero(t, h.touchCnt, "OnAdd must not call Touch")
}

// OnGet should promote the key to the back.
func TestLRU_OnGet_Touch(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string]().New(h)

	p.OnGet("k2")

	assert.Equal(t, 1, h.touchCnt, "OnGet must call Touch exactly once")
	assert.Equal(t, "k2", h.lastTouch)
}

// OnUpdate relies on the shard's re-insert for promotion.
func TestLRU_OnUpdate_NoOp(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string]().New(h)

	p.OnUpdate("k3")

	assert.Zero(t, h.touchCnt, "OnUpdate must not call Touch")
}

// OnRemove is a no-op for pure LRU.
func TestLRU_OnRemove_NoOp(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string]().New(h)

	p.OnRemove("k4")

	assert.Zero(t, h.touchCnt, "OnRemove for LRU must be no-op")
}
