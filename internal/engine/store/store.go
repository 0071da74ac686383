package store

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// Revision counts applied mutations. It increases monotonically for the
// lifetime of a store, including across undo, so observers can order
// states even when content repeats.
type Revision uint64

// Store holds the authoritative timeline state: the element array, the
// track stack, and the main-track magnet flag. The contained slices are
// immutable values; every mutation installs brand-new top-level slices
// and bumps the revision. Prior snapshots therefore stay valid forever.
//
// The store is not synchronized: all access happens on the
// engine's event turn, so there is nothing to lock.
type Store struct {
	elements []*element.Element
	tracks   []*track.Track
	magnet   bool
	revision Revision
}

// New creates an empty store. The main track always exists and always
// carries the clip role.
func New() *Store {
	return &Store{
		tracks: []*track.Track{track.New(track.RoleClip)},
	}
}

// Elements returns the current element array. Callers must treat it as
// read-only; mutation paths build a new slice and go through Apply.
func (s *Store) Elements() []*element.Element {
	return s.elements
}

// Tracks returns the current track stack, main track first. Read-only,
// as with Elements.
func (s *Store) Tracks() []*track.Track {
	return s.tracks
}

// MagnetEnabled reports whether the main-track magnet is on.
func (s *Store) MagnetEnabled() bool {
	return s.magnet
}

// Revision returns the current revision.
func (s *Store) Revision() Revision {
	return s.revision
}

// TrackAssignment returns the derived element-to-track mapping. It is
// recomputed from the element array on every call and never stored.
func (s *Store) TrackAssignment() map[element.ID]int {
	out := make(map[element.ID]int, len(s.elements))
	for _, e := range s.elements {
		out[e.ID] = e.TrackIndex
	}
	return out
}

// Apply installs a new element array and track stack. When both are
// unchanged from the current state the call is absorbed: nothing is
// installed, the revision stays put, and false comes back so callers
// skip history and notification.
func (s *Store) Apply(elements []*element.Element, tracks []*track.Track) bool {
	if sameElements(s.elements, elements) && sameTracks(s.tracks, tracks) {
		return false
	}
	s.elements = elements
	s.tracks = tracks
	s.revision++
	return true
}

// SetMagnet flips the main-track magnet flag. Returns false when the
// flag already has the value.
func (s *Store) SetMagnet(enabled bool) bool {
	if s.magnet == enabled {
		return false
	}
	s.magnet = enabled
	s.revision++
	return true
}

// Snapshot captures the current state by reference. O(1); safe forever
// because mutation never touches installed slices.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Elements: s.elements,
		Tracks:   s.tracks,
		Magnet:   s.magnet,
		Revision: s.revision,
	}
}

// Restore reinstalls a snapshot as the current state. The revision still
// moves forward: restoring an old state is a new mutation, not time
// travel for observers.
func (s *Store) Restore(snap Snapshot) {
	s.elements = snap.Elements
	s.tracks = snap.Tracks
	s.magnet = snap.Magnet
	s.revision++
}

// sameElements reports whether both slices hold identical element
// pointers in identical order.
func sameElements(a, b []*element.Element) bool {
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

func sameTracks(a, b []*track.Track) bool {
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
