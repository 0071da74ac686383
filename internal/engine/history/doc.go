// Package history provides undo/redo for the timeline engine.
//
// The history is a pair of bounded stacks holding store snapshots, not
// command objects. Because every mutation path installs brand-new
// top-level slices, a snapshot taken before a mutation stays valid
// forever; undoing is simply reinstalling it. Key concepts:
//
// # Recording
//
// Every structural mutation records the pre-mutation snapshot:
//
//	pre := st.Snapshot()
//	// ... build and apply the new state ...
//	hist.Record(pre, "move")
//
// Recording clears the redo stack. Mutations flagged history:false
// (programmatic reconciliation, playback) skip Record entirely and so
// never disturb what the user can undo.
//
// # Undo and redo
//
// Undo exchanges the current state for the top of the undo stack; the
// current state moves to the redo stack so the step can be replayed:
//
//	restored, err := hist.Undo(st.Snapshot())
//	if err == nil {
//		st.Restore(restored)
//	}
//
// Redo is symmetric. Both report ErrNothingToUndo / ErrNothingToRedo
// when their stack is empty.
//
// # Bounds
//
// The undo stack is capped (DefaultLimit entries unless configured);
// the oldest entries are dropped first. Labels and timestamps ride
// along with each entry so surfaces can describe the next undo step.
package history
