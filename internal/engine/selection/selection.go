package selection

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// Set manages the selected element ids. Order is insertion order, which
// doubles as recency: the most recently added id is the fallback primary
// when the current primary disappears. The invariant maintained through
// Reconcile is that every id refers to an existing element on an
// unlocked track.
type Set struct {
	ids     []element.ID
	primary element.ID
}

// NewSet creates an empty selection.
func NewSet() *Set {
	return &Set{}
}

// Add selects an id and makes it the primary. Re-adding an already
// selected id refreshes its recency.
func (s *Set) Add(id element.ID) {
	if id == "" {
		return
	}
	s.remove(id)
	s.ids = append(s.ids, id)
	s.primary = id
}

// Remove deselects an id. When the primary is removed the most recently
// added survivor takes over.
func (s *Set) Remove(id element.ID) {
	if !s.remove(id) {
		return
	}
	if s.primary == id {
		s.primary = s.mostRecent()
	}
}

// Toggle selects an unselected id and deselects a selected one.
func (s *Set) Toggle(id element.ID) {
	if s.Contains(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Replace installs an exact selection. Duplicates collapse onto their
// first occurrence; the last id becomes primary.
func (s *Set) Replace(ids ...element.ID) {
	s.ids = s.ids[:0]
	s.primary = ""
	seen := make(map[element.ID]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s.ids = append(s.ids, id)
	}
	if len(s.ids) > 0 {
		s.primary = s.ids[len(s.ids)-1]
	}
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = nil
	s.primary = ""
}

// Contains reports whether the id is selected.
func (s *Set) Contains(id element.ID) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in insertion order. The returned slice is
// safe to modify without affecting the Set.
func (s *Set) IDs() []element.ID {
	out := make([]element.ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Primary returns the primary id, or empty when nothing is selected.
func (s *Set) Primary() element.ID {
	return s.primary
}

// Count returns the number of selected ids.
func (s *Set) Count() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s *Set) IsEmpty() bool {
	return len(s.ids) == 0
}

// Reconcile drops ids that no longer refer to an existing element on an
// unlocked track. The primary survives when it can; otherwise the most
// recently added survivor takes over, and an emptied selection clears
// the primary. Reports whether anything changed.
func (s *Set) Reconcile(elements []*element.Element, tracks []*track.Track) bool {
	kept := s.ids[:0]
	for _, id := range s.ids {
		e := element.ByID(elements, id)
		if e == nil || track.IsLocked(tracks, e.TrackIndex) {
			continue
		}
		kept = append(kept, id)
	}
	changed := len(kept) != len(s.ids)
	s.ids = kept

	prior := s.primary
	if s.primary != "" && !s.Contains(s.primary) {
		s.primary = s.mostRecent()
	}
	return changed || s.primary != prior
}

// remove deletes the id preserving order; reports whether it was present.
func (s *Set) remove(id element.ID) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// mostRecent returns the last added id, or empty.
func (s *Set) mostRecent() element.ID {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[len(s.ids)-1]
}
