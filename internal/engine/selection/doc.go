// Package selection tracks which elements are selected and which one
// is primary.
//
// The set is forgiving about its input: stale ids, duplicates, and ids on
// locked tracks are filtered away by Reconcile rather than rejected at
// the call site. Structural changes (undo, deletes, lock toggles) run
// Reconcile so the selection never points at something the user cannot
// edit.
package selection
