package editor

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// selectable reports whether an element may enter the selection: it
// must exist and sit on an unlocked track.
func (ed *Editor) selectable(id element.ID) bool {
	e := element.ByID(ed.store.Elements(), id)
	if e == nil {
		return false
	}
	return !track.IsLocked(ed.store.Tracks(), e.TrackIndex)
}

// Select makes the given element the sole selection.
func (ed *Editor) Select(id element.ID) bool {
	if !ed.selectable(id) {
		return false
	}
	if ed.sel.Count() == 1 && ed.sel.Primary() == id {
		return false
	}
	ed.sel.Replace(id)
	ed.publishSelection()
	return true
}

// AddToSelection adds the element and makes it primary.
func (ed *Editor) AddToSelection(id element.ID) bool {
	if !ed.selectable(id) {
		return false
	}
	if ed.sel.Contains(id) && ed.sel.Primary() == id {
		return false
	}
	ed.sel.Add(id)
	ed.publishSelection()
	return true
}

// ToggleSelection adds the element if absent, removes it if present.
func (ed *Editor) ToggleSelection(id element.ID) bool {
	if !ed.sel.Contains(id) && !ed.selectable(id) {
		return false
	}
	ed.sel.Toggle(id)
	ed.publishSelection()
	return true
}

// ClearSelection empties the selection.
func (ed *Editor) ClearSelection() bool {
	if ed.sel.IsEmpty() {
		return false
	}
	ed.sel.Clear()
	ed.publishSelection()
	return true
}

// SelectedIDs returns the selected element ids, oldest first.
func (ed *Editor) SelectedIDs() []element.ID {
	return ed.sel.IDs()
}

// PrimarySelection returns the primary selected id, "" when none.
func (ed *Editor) PrimarySelection() element.ID {
	return ed.sel.Primary()
}

// IsSelected reports whether the element is in the selection.
func (ed *Editor) IsSelected(id element.ID) bool {
	return ed.sel.Contains(id)
}

// SelectionCount returns the number of selected elements.
func (ed *Editor) SelectionCount() int {
	return ed.sel.Count()
}
