// Package store owns the authoritative timeline state.
//
// All structural change funnels through one place: build new element and
// track slices, hand them to Apply. Unchanged results are absorbed as
// no-ops, which is what keeps the undo history free of empty entries.
// Snapshots capture state by reference in O(1) and never go stale,
// because installed slices are never mutated afterward.
package store
