// Package ring provides a circular doubly linked list without a head/tail
// sentinel whose elements are owned by handles.
//
// Append returns a *Handle; closing the handle is the only way to remove its
// element. Neighbor links are weak pointers, so the only strong reference to
// an element is the one held by its handle. Every operation is O(1) except a
// full traversal.
//
// A ring keeps a "current" element: the start of iteration and the element
// appends are inserted in front of, so appended values come last when
// iterating. Closing the handle of the current element moves "current" to its
// successor.
//
// Ownership
//
//	l := ring.New[string]()
//	a := l.Append("a")
//	b := l.Append("b")
//	defer b.Close()
//	_ = a.Close() // l now yields just "b"
//
// Handles should be closed explicitly. A handle that is dropped without Close
// is not lost: once the garbage collector reclaims it, its element is unlinked
// by the next Append, iteration or rotation on the ring. Until then the
// element is still yielded.
//
// A view whose current element has been removed is empty, and appending
// through it starts a new ring of its own.
//
// Aliasing
//
// A *List is a reference to shared ring state: Clone returns another
// reference, not a copy. Prev and Next return detached views that start one
// element earlier or later; views share elements with the source but keep
// their own start position.
//
// Concurrency
//
// None of the types here are safe for concurrent use. Mutating a ring
// (Append or Close) while one of its sequences is being consumed is
// undefined, with one exception: the handle of the element just yielded may
// be closed.
package ring
