package twoq

import "github.com/IvanBrykalov/ringmap/orderedmap"

// queue is a FIFO of distinct keys: oldest at the front, newest at the back.
// It owns the handle of every member, so a key leaves the underlying set
// exactly when it is removed from the queue.
type queue[K comparable] struct {
	set     *orderedmap.Set[K]
	handles map[K]*orderedmap.Handle[K, struct{}]
}

func newQueue[K comparable]() *queue[K] {
	return &queue[K]{
		set:     orderedmap.NewSet[K](),
		handles: make(map[K]*orderedmap.Handle[K, struct{}]),
	}
}

// push appends k, or moves it to the back if already queued.
func (q *queue[K]) push(k K) {
	present, h := q.set.Insert(k)
	if present {
		_ = h.Close()
		return
	}
	q.handles[k] = h
}

// remove drops k and reports whether it was queued.
func (q *queue[K]) remove(k K) bool {
	h, ok := q.handles[k]
	if !ok {
		return false
	}
	delete(q.handles, k)
	_ = h.Close()
	return true
}

func (q *queue[K]) contains(k K) bool { return q.set.Contains(k) }

// oldest returns the front key.
func (q *queue[K]) oldest() (k K, ok bool) {
	for k = range q.set.All() {
		return k, true
	}
	return k, false
}

func (q *queue[K]) len() int { return q.set.Len() }
