package editor

import (
	"sort"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/store"
	"github.com/reelsmith/timeline/internal/engine/track"
	"github.com/reelsmith/timeline/internal/event"
)

// InsertElement creates a new element and places it through conflict
// resolution, moving it to a nearby track or a freshly inserted one when
// the target is occupied. It returns the new element's id, or "" when
// the interval is empty.
func (ed *Editor) InsertElement(name string, role track.Role, start, end element.Frame, target placement.DropTarget) element.ID {
	if start >= end {
		return ""
	}
	el := element.New(name, role, start, end, 0, "")
	elements, tracks := ed.store.Elements(), ed.store.Tracks()

	res := placement.Resolve(el, start, end, target, elements, tracks, ed.resolve)
	if res.Inserted {
		elements = placement.ShiftIndices(elements, res.TrackIndex)
	}
	el.TrackIndex = res.TrackIndex
	el.TrackID = res.Tracks[res.TrackIndex].ID

	next := make([]*element.Element, 0, len(elements)+1)
	next = append(next, elements...)
	next = append(next, el)
	next = ed.maybeReflow(next, res.Tracks)

	if !ed.commit(next, res.Tracks, true, "insert "+name) {
		return ""
	}
	return el.ID
}

// RemoveElements deletes the given elements. Unknown ids are ignored;
// if none match, nothing happens.
func (ed *Editor) RemoveElements(ids ...element.ID) bool {
	if len(ids) == 0 {
		return false
	}
	drop := make(map[element.ID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	elements := ed.store.Elements()
	next := make([]*element.Element, 0, len(elements))
	for _, e := range elements {
		if !drop[e.ID] {
			next = append(next, e)
		}
	}
	if len(next) == len(elements) {
		return false
	}
	tracks := ed.store.Tracks()
	next = ed.maybeReflow(next, tracks)
	return ed.commit(next, tracks, true, "remove")
}

// SplitElement cuts an element in two at the given frame. The left half
// keeps the original id, so attachments anchored to it stay put; the
// right half gets a fresh id and is returned. Split points on or outside
// the element's interval are rejected.
func (ed *Editor) SplitElement(id element.ID, at element.Frame) (element.ID, bool) {
	elements := ed.store.Elements()
	e := element.ByID(elements, id)
	if e == nil || at <= e.Start || at >= e.End {
		return "", false
	}

	left := e.Clone()
	left.End = at
	right := e.Clone()
	right.ID = element.NewID()
	right.Start = at

	next := make([]*element.Element, 0, len(elements)+1)
	for _, cur := range elements {
		if cur.ID == id {
			next = append(next, left, right)
		} else {
			next = append(next, cur)
		}
	}
	next = ed.maybeReflow(next, ed.store.Tracks())
	if !ed.commit(next, ed.store.Tracks(), true, "split "+e.Name) {
		return "", false
	}
	return right.ID, true
}

// UpdateElementTrack moves an element to another track at its current
// interval, going through the same conflict resolution as a drop. When
// the resolved lane equals the current one, nothing happens.
func (ed *Editor) UpdateElementTrack(id element.ID, targetTrack int) bool {
	elements, tracks := ed.store.Elements(), ed.store.Tracks()
	e := element.ByID(elements, id)
	if e == nil {
		return false
	}
	res := placement.Resolve(e, e.Start, e.End, placement.OnTrack(targetTrack), elements, tracks, ed.resolve)
	if !res.Inserted && res.TrackIndex == e.TrackIndex {
		return false
	}
	if res.Inserted {
		elements = placement.ShiftIndices(elements, res.TrackIndex)
	}
	moved := e.Clone()
	moved.TrackIndex = res.TrackIndex
	moved.TrackID = res.Tracks[res.TrackIndex].ID
	next := replaceElement(elements, id, moved)
	next = ed.maybeReflow(next, res.Tracks)
	return ed.commit(next, res.Tracks, true, "retrack "+e.Name)
}

// UpdateElementTimeAndTrack commits a drop: the element takes the new
// interval and the resolved landing track. This is the single-element
// path; use MoveWithAttachments to carry attached elements along.
func (ed *Editor) UpdateElementTimeAndTrack(id element.ID, start, end element.Frame, target placement.DropTarget) bool {
	if start >= end {
		return false
	}
	elements, tracks := ed.store.Elements(), ed.store.Tracks()
	e := element.ByID(elements, id)
	if e == nil {
		return false
	}
	res := placement.Resolve(e, start, end, target, elements, tracks, ed.resolve)
	if !res.Inserted && res.TrackIndex == e.TrackIndex && start == e.Start && end == e.End {
		return false
	}
	if res.Inserted {
		elements = placement.ShiftIndices(elements, res.TrackIndex)
	}
	moved := e.Clone()
	moved.Start, moved.End = start, end
	moved.TrackIndex = res.TrackIndex
	moved.TrackID = res.Tracks[res.TrackIndex].ID
	next := replaceElement(elements, id, moved)
	next = ed.maybeReflow(next, res.Tracks)
	return ed.commit(next, res.Tracks, true, "move "+e.Name)
}

// MoveWithAttachments moves an element and carries its attachments by
// the same time delta. With no explicit children, the attachment set is
// derived from current geometry and anchors; explicit ids are filtered
// to live elements on unlocked tracks. A child whose shifted interval
// cannot be placed near its track stays behind.
func (ed *Editor) MoveWithAttachments(id element.ID, start, end element.Frame, target placement.DropTarget, children ...element.ID) bool {
	if start >= end {
		return false
	}
	elements, tracks := ed.store.Elements(), ed.store.Tracks()
	e := element.ByID(elements, id)
	if e == nil {
		return false
	}
	delta := start - e.Start

	kids := ed.attachmentSet(e, children)

	res := placement.Resolve(e, start, end, target, elements, tracks, ed.resolve)
	if !res.Inserted && res.TrackIndex == e.TrackIndex && start == e.Start && end == e.End {
		return false
	}
	if res.Inserted {
		elements = placement.ShiftIndices(elements, res.TrackIndex)
	}
	moved := e.Clone()
	moved.Start, moved.End = start, end
	moved.TrackIndex = res.TrackIndex
	moved.TrackID = res.Tracks[res.TrackIndex].ID
	next := replaceElement(elements, id, moved)

	// Cascade lowest track first so a child settles before anything
	// stacked above it re-resolves.
	for _, kid := range kids {
		cur := element.ByID(next, kid)
		if cur == nil {
			continue
		}
		ns, ne := cur.Start+delta, cur.End+delta
		if ns < 0 {
			continue
		}
		lane, ok := placement.ResolveNoInsert(cur, ns, ne, cur.TrackIndex, next, res.Tracks, ed.resolve)
		if !ok {
			continue
		}
		shifted := cur.Clone()
		shifted.Start, shifted.End = ns, ne
		shifted.TrackIndex = lane
		shifted.TrackID = res.Tracks[lane].ID
		next = replaceElement(next, kid, shifted)
	}

	next = ed.maybeReflow(next, res.Tracks)
	return ed.commit(next, res.Tracks, true, "move "+e.Name)
}

// attachmentSet returns the ordered child ids to carry with a move. An
// empty explicit list means derive the transitive attachment set from
// the current state.
func (ed *Editor) attachmentSet(parent *element.Element, explicit []element.ID) []element.ID {
	elements, tracks := ed.store.Elements(), ed.store.Tracks()
	if len(explicit) == 0 {
		attached := placement.TransitivelyAttached(parent, elements, tracks, ed.tolerance)
		ids := make([]element.ID, len(attached))
		for i, a := range attached {
			ids[i] = a.ID
		}
		return ids
	}

	seen := map[element.ID]bool{parent.ID: true}
	kids := make([]*element.Element, 0, len(explicit))
	for _, id := range explicit {
		if seen[id] {
			continue
		}
		seen[id] = true
		c := element.ByID(elements, id)
		if c == nil || track.IsLocked(tracks, c.TrackIndex) {
			continue
		}
		kids = append(kids, c)
	}
	sort.Slice(kids, func(i, j int) bool {
		a, b := kids[i], kids[j]
		if a.TrackIndex != b.TrackIndex {
			return a.TrackIndex < b.TrackIndex
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})
	ids := make([]element.ID, len(kids))
	for i, c := range kids {
		ids[i] = c.ID
	}
	return ids
}

// SetTrackFlag sets one flag on one track. Locking a track drops its
// elements from the selection.
func (ed *Editor) SetTrackFlag(index int, flag track.Flag, value bool) bool {
	tracks := ed.store.Tracks()
	next := track.WithFlag(tracks, index, flag, value)
	if sameTrackSlice(next, tracks) {
		return false
	}
	elements := ed.maybeReflow(ed.store.Elements(), next)
	return ed.commit(elements, next, true, "track flag")
}

// ToggleTrackFlag flips one flag on one track.
func (ed *Editor) ToggleTrackFlag(index int, flag track.Flag) bool {
	t := track.At(ed.store.Tracks(), index)
	if t == nil {
		return false
	}
	return ed.SetTrackFlag(index, flag, !t.Flag(flag))
}

// SetMainTrackMagnet switches the main-track magnet. Enabling it
// immediately compacts the main track; both the flag and the compaction
// land in one undoable step.
func (ed *Editor) SetMainTrackMagnet(enabled bool) bool {
	if ed.store.MagnetEnabled() == enabled {
		return false
	}
	pre := ed.store.Snapshot()
	ed.store.SetMagnet(enabled)
	if enabled {
		reflowed, changed := placement.ReflowMain(ed.store.Elements(), ed.store.Tracks(), ed.tolerance)
		if changed {
			ed.store.Apply(reflowed, ed.store.Tracks())
			ed.sel.Reconcile(ed.store.Elements(), ed.store.Tracks())
			ed.bus.Publish(event.ElementsChanged{Revision: uint64(ed.store.Revision())})
		}
	}
	ed.hist.Record(pre, "magnet")
	ed.bus.Publish(event.MagnetChanged{Enabled: enabled})
	ed.publishHistory()
	return true
}

// ReconcileTracks prunes trailing empty tracks above the topmost
// occupied one. Housekeeping, not an edit: it does not touch history.
func (ed *Editor) ReconcileTracks() bool {
	elements, tracks := ed.store.Elements(), ed.store.Tracks()
	occupied := func(index int) bool {
		for _, e := range elements {
			if e.TrackIndex == index {
				return true
			}
		}
		return false
	}
	next := track.PruneTrailing(tracks, occupied)
	if len(next) == len(tracks) {
		return false
	}
	return ed.commit(elements, next, false, "")
}

// SetElements installs a caller-built element array wholesale. The
// magnet still applies; recordHistory false makes it a silent
// programmatic reconciliation.
func (ed *Editor) SetElements(next []*element.Element, recordHistory bool) bool {
	tracks := ed.store.Tracks()
	next = ed.maybeReflow(next, tracks)
	return ed.commit(next, tracks, recordHistory, "edit")
}

// UpdateElements applies an updater to the current element array and
// installs the result, like SetElements.
func (ed *Editor) UpdateElements(update func([]*element.Element) []*element.Element, recordHistory bool) bool {
	if update == nil {
		return false
	}
	return ed.SetElements(update(ed.store.Elements()), recordHistory)
}

// Undo reverts the most recent recorded mutation and re-arms it for
// redo. It returns history.ErrNothingToUndo when the stack is empty.
func (ed *Editor) Undo() error {
	return ed.timeTravel(ed.hist.Undo)
}

// Redo replays the most recently undone mutation. It returns
// history.ErrNothingToRedo when there is nothing to replay.
func (ed *Editor) Redo() error {
	return ed.timeTravel(ed.hist.Redo)
}

func (ed *Editor) timeTravel(step func(store.Snapshot) (store.Snapshot, error)) error {
	pre := ed.store.Snapshot()
	restored, err := step(pre)
	if err != nil {
		return err
	}
	ed.store.Restore(restored)
	selChanged := ed.sel.Reconcile(ed.store.Elements(), ed.store.Tracks())

	rev := uint64(ed.store.Revision())
	ed.bus.Publish(event.ElementsChanged{Revision: rev})
	if !sameTrackSlice(pre.Tracks, ed.store.Tracks()) {
		ed.bus.Publish(event.TracksChanged{Revision: rev, Count: len(ed.store.Tracks())})
	}
	if pre.Magnet != restored.Magnet {
		ed.bus.Publish(event.MagnetChanged{Enabled: restored.Magnet})
	}
	if selChanged {
		ed.publishSelection()
	}
	ed.publishHistory()
	return nil
}
