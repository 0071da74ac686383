package element

import "github.com/reelsmith/timeline/internal/engine/track"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one frame. Intervals that merely touch
// at an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Frame) bool {
	return aStart < bEnd && bStart < aEnd
}

// HasOverlapOnTrack reports whether any element on the given track
// overlaps the interval [start, end). The element with ID exclude is
// ignored, so a move can be tested against everything but the moving
// element itself.
func HasOverlapOnTrack(start, end Frame, trackIndex int, elements []*Element, exclude ID) bool {
	for _, e := range elements {
		if e.ID == exclude || e.TrackIndex != trackIndex {
			continue
		}
		if Overlaps(start, end, e.Start, e.End) {
			return true
		}
	}
	return false
}

// HasRoleConflict reports whether placing an element of the given role
// on the track would violate role rules, regardless of timing.
//
// The main track (index 0) holds clip-role elements only. Elsewhere,
// two elements of the same role may share a track while elements of
// differing roles may not.
func HasRoleConflict(role track.Role, trackIndex int, elements []*Element, exclude ID) bool {
	if trackIndex == 0 && role != track.RoleClip {
		return true
	}
	for _, e := range elements {
		if e.ID == exclude || e.TrackIndex != trackIndex {
			continue
		}
		if track.RolesConflict(role, e.Role) {
			return true
		}
	}
	return false
}

// OnTrack returns the elements stored on the given track, in slice order.
func OnTrack(elements []*Element, trackIndex int) []*Element {
	var out []*Element
	for _, e := range elements {
		if e.TrackIndex == trackIndex {
			out = append(out, e)
		}
	}
	return out
}

// ByID returns the element with the given ID, or nil if absent.
func ByID(elements []*Element, id ID) *Element {
	for _, e := range elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// MaxEnd returns the largest End across all elements, or 0 when empty.
// This is the effective length of the sequence.
func MaxEnd(elements []*Element) Frame {
	var max Frame
	for _, e := range elements {
		if e.End > max {
			max = e.End
		}
	}
	return max
}
