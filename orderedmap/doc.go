// Package orderedmap provides an insertion-ordered map and set whose entries
// live exactly as long as somebody holds a handle to them.
//
// Design
//
//   - Storage: a Go map from key to value plus a ring.List of keys that
//     defines iteration order. Lookups are O(1) expected; iteration is O(n).
//
//   - Ownership: Insert returns a *Handle. Handles of one entry are counted;
//     when the last one is closed the entry is removed from both the table
//     and the order list. There is no Delete.
//
//   - Move to back: inserting an existing key replaces the value and moves
//     the key to the back of iteration order. The entry keeps its identity,
//     so handles already held stay valid and Same reports true.
//
//   - Bulk construction: Extend/FromSeq (and SetExtend/SetFrom) apply the
//     same rules as repeated Insert. Values that implement Registrar receive
//     their own handle right after insertion; for all other values the map
//     keeps the handle itself until Release is called.
//
//   - Serialization: maps encode as an ordered sequence of [key, value]
//     pairs and sets as a sequence of keys, in JSON and YAML. Decoding goes
//     through bulk construction.
//
// Basic usage
//
//	m := orderedmap.New[string, int]()
//	_, _, a := m.Insert("a", 1)
//	_, _, b := m.Insert("b", 2)
//	defer b.Close()
//	prev, replaced, a2 := m.Insert("a", 3) // prev == 1, replaced, order is b, a
//	_ = a.Close()
//	_ = a2.Close() // last handle for "a": the entry is gone
//
// A *Map is a reference: Clone shares one table with its source, and so does
// a plain copy of a Map built by New. A zero-value Map allocates its table on
// first use, so copies taken before that are independent maps; use New or
// Clone when two values must alias. Nothing in this package is safe for
// concurrent use; see package cache for a locked, bounded wrapper.
package orderedmap
