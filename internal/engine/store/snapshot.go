package store

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// Snapshot is an immutable capture of store state used for undo/redo.
// It shares the element and track pointers with the state it captured;
// the copy-on-write discipline of all mutation paths is what makes the
// sharing safe.
type Snapshot struct {
	Elements []*element.Element
	Tracks   []*track.Track
	Magnet   bool
	Revision Revision
}

// EqualContent reports whether two snapshots describe the same timeline:
// same elements field for field, same tracks, same magnet flag. Revision
// is ignored, so a state reached twice compares equal to itself.
func EqualContent(a, b Snapshot) bool {
	if a.Magnet != b.Magnet {
		return false
	}
	if len(a.Elements) != len(b.Elements) || len(a.Tracks) != len(b.Tracks) {
		return false
	}
	for i := range a.Elements {
		if *a.Elements[i] != *b.Elements[i] {
			return false
		}
	}
	for i := range a.Tracks {
		if *a.Tracks[i] != *b.Tracks[i] {
			return false
		}
	}
	return true
}
