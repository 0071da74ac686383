package placement

import (
	"sort"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// DefaultTolerance is the slack, in frames, allowed when deciding
// whether a child's interval lies within its parent's.
const DefaultTolerance element.Frame = 3

// AttachedTo reports whether child is stacked onto parent: the child
// sits on the lane directly above the parent's and its interval lies
// within the parent's interval widened by tolerance on each side. A
// non-empty AnchorID pins the child to that one parent instead,
// overriding the geometric rule.
func AttachedTo(child, parent *element.Element, tolerance element.Frame) bool {
	if child.ID == parent.ID {
		return false
	}
	if child.AnchorID != "" {
		return child.AnchorID == parent.ID
	}
	return child.TrackIndex == parent.TrackIndex+1 &&
		child.Start >= parent.Start-tolerance &&
		child.End <= parent.End+tolerance
}

// Attached returns the elements directly attached to parent, in stored
// order. The relation is derived fresh from current positions each time;
// it is never persisted.
func Attached(parent *element.Element, elements []*element.Element, tolerance element.Frame) []*element.Element {
	var out []*element.Element
	for _, e := range elements {
		if AttachedTo(e, parent, tolerance) {
			out = append(out, e)
		}
	}
	return out
}

// TransitivelyAttached returns the closure of the attachment relation
// above parent: its children, their children, and so on. Children on
// locked tracks are excluded together with everything stacked onto them.
// The result is sorted lowest track first, then by start, then by ID,
// which fixes the cascade order.
func TransitivelyAttached(parent *element.Element, elements []*element.Element, tracks []*track.Track, tolerance element.Frame) []*element.Element {
	seen := map[element.ID]bool{parent.ID: true}
	var out []*element.Element

	queue := []*element.Element{parent}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, c := range Attached(p, elements, tolerance) {
			if seen[c.ID] || track.IsLocked(tracks, c.TrackIndex) {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TrackIndex != b.TrackIndex {
			return a.TrackIndex < b.TrackIndex
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})
	return out
}
