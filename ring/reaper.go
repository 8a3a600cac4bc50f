package ring

import "sync"

// orphan is an element whose handle was garbage collected without Close.
// It must not reference the handle, or the cleanup would never run.
type orphan[V any] struct {
	r *ring[V]
	n *node[V]
}

// reaper collects orphans reported by runtime cleanups. Cleanups run on
// their own goroutine, so they only enqueue; the owning goroutine unlinks
// the elements on its next ring operation.
type reaper[V any] struct {
	mu      sync.Mutex
	orphans []orphan[V]
}

func (g *reaper[V]) push(o orphan[V]) {
	g.mu.Lock()
	g.orphans = append(g.orphans, o)
	g.mu.Unlock()
}

// drain unlinks every queued orphan that is still in its ring.
func (g *reaper[V]) drain() {
	if g == nil {
		return
	}
	g.mu.Lock()
	pending := g.orphans
	g.orphans = nil
	g.mu.Unlock()

	for _, o := range pending {
		if !o.n.removed {
			o.r.remove(o.n)
		}
	}
}
