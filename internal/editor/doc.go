// Package editor ties the engine together behind one facade: the
// store, undo history, selection, and playback clock, with conflict
// resolution and magnet reflow applied on the way in.
//
// # Commits
//
// Every mutating operation follows the same path: build a candidate
// element array and track stack, run main-track reflow if the magnet is
// on, then hand both to the store. If the store reports a real change,
// the pre-state is recorded for undo, the selection is reconciled, and
// change events go out on the bus. Operations that change nothing fall
// out of this path early and leave no history entry.
//
// # Concurrency
//
// The editor is not safe for concurrent use. Each external event (a drop,
// a keypress, a playback tick) drives exactly one synchronous operation
// to completion before the next one starts, so readers always observe
// one consistent state. Confine an Editor and its subscribers to a
// single goroutine.
package editor
