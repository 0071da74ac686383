package editor

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/track"
	"github.com/reelsmith/timeline/internal/event"
)

// commit is the single funnel for state changes. It snapshots the
// pre-state, hands the candidate arrays to the store, and when the
// store accepts them records history, reconciles the selection, and
// publishes change events. A store no-op leaves everything untouched
// and returns false.
func (ed *Editor) commit(elements []*element.Element, tracks []*track.Track, recordHistory bool, label string) bool {
	pre := ed.store.Snapshot()
	if !ed.store.Apply(elements, tracks) {
		return false
	}
	if recordHistory {
		ed.hist.Record(pre, label)
	}
	selChanged := ed.sel.Reconcile(ed.store.Elements(), ed.store.Tracks())

	rev := uint64(ed.store.Revision())
	if !sameElementSlice(pre.Elements, ed.store.Elements()) {
		ed.bus.Publish(event.ElementsChanged{Revision: rev})
	}
	if !sameTrackSlice(pre.Tracks, ed.store.Tracks()) {
		ed.bus.Publish(event.TracksChanged{Revision: rev, Count: len(ed.store.Tracks())})
	}
	if selChanged {
		ed.publishSelection()
	}
	if recordHistory {
		ed.publishHistory()
	}
	return true
}

// maybeReflow compacts the main track when the magnet is enabled.
func (ed *Editor) maybeReflow(elements []*element.Element, tracks []*track.Track) []*element.Element {
	if !ed.store.MagnetEnabled() {
		return elements
	}
	reflowed, _ := placement.ReflowMain(elements, tracks, ed.tolerance)
	return reflowed
}

func (ed *Editor) publishSelection() {
	ed.bus.Publish(event.SelectionChanged{
		Primary: ed.sel.Primary(),
		Count:   ed.sel.Count(),
	})
}

func (ed *Editor) publishHistory() {
	ed.bus.Publish(event.HistoryChanged{
		CanUndo: ed.hist.CanUndo(),
		CanRedo: ed.hist.CanRedo(),
	})
}

// replaceElement returns a new array with the element of the given id
// swapped for repl. All other entries are shared.
func replaceElement(elements []*element.Element, id element.ID, repl *element.Element) []*element.Element {
	out := make([]*element.Element, len(elements))
	for i, e := range elements {
		if e.ID == id {
			out[i] = repl
		} else {
			out[i] = e
		}
	}
	return out
}

func sameElementSlice(a, b []*element.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameTrackSlice(a, b []*track.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
