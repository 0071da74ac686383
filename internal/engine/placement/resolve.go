package placement

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// TieBreak selects which neighbor wins a gap drop when both the lane
// below and the lane above the seam could take the element. The
// below-first default mirrors long-standing editor behavior; it is a
// policy choice, not a structural requirement, so it stays overridable.
type TieBreak uint8

const (
	// TieBreakBelow probes the lane below the seam first.
	TieBreakBelow TieBreak = iota
	// TieBreakAbove probes the lane above the seam first.
	TieBreakAbove
)

// String returns the tie-break name.
func (t TieBreak) String() string {
	if t == TieBreakAbove {
		return "above"
	}
	return "below"
}

// ParseTieBreak maps a config spelling to a tie-break policy.
func ParseTieBreak(s string) (TieBreak, bool) {
	switch s {
	case "below":
		return TieBreakBelow, true
	case "above":
		return TieBreakAbove, true
	default:
		return TieBreakBelow, false
	}
}

// Options tune resolution policy.
type Options struct {
	TieBreak TieBreak
}

// Result is the outcome of a resolution. Tracks is the input slice when
// no insertion happened, or a new slice containing the inserted track at
// TrackIndex when Inserted is true. After an insertion the caller must
// renumber stored elements with ShiftIndices before applying TrackIndex.
type Result struct {
	TrackIndex int
	Tracks     []*track.Track
	Inserted   bool
}

// Resolve decides the final track for placing el at [start, end) given
// the drop target. It never fails: when no existing lane can take the
// element a new track is inserted.
//
// Probing is bounded to one neighbor in each direction. Scanning
// further would pack tracks tighter but makes drop results hard to
// predict from the gesture.
func Resolve(el *element.Element, start, end element.Frame, target DropTarget, elements []*element.Element, tracks []*track.Track, opts Options) Result {
	current := -1
	if stored := element.ByID(elements, el.ID); stored != nil {
		current = stored.TrackIndex
	}

	if target.Kind == DropOnTrack {
		target = redirect(el.Role, target, tracks, opts)
	}

	if target.Kind == DropInGap {
		g := clampGap(target.TrackIndex, len(tracks))
		first, second := g-1, g
		if opts.TieBreak == TieBreakAbove {
			first, second = g, g-1
		}
		for _, c := range [2]int{first, second} {
			if c == current {
				continue
			}
			if laneFree(el.Role, start, end, c, elements, tracks, el.ID) {
				return Result{TrackIndex: c, Tracks: tracks}
			}
		}
		next, _ := track.InsertAt(tracks, g, el.Role)
		return Result{TrackIndex: g, Tracks: next, Inserted: true}
	}

	t := clampLane(target.TrackIndex, len(tracks))
	if laneFree(el.Role, start, end, t, elements, tracks, el.ID) {
		return Result{TrackIndex: t, Tracks: tracks}
	}
	if laneFree(el.Role, start, end, t+1, elements, tracks, el.ID) {
		return Result{TrackIndex: t + 1, Tracks: tracks}
	}
	next, _ := track.InsertAt(tracks, t+1, el.Role)
	return Result{TrackIndex: t + 1, Tracks: next, Inserted: true}
}

// ResolveNoInsert places an element without ever inserting a track: the
// target lane is probed first, then its two neighbors in tie-break
// order. Cascaded children go through this variant so one parent move
// cannot multiply tracks. Returns false when no probed lane is free.
func ResolveNoInsert(el *element.Element, start, end element.Frame, targetTrack int, elements []*element.Element, tracks []*track.Track, opts Options) (int, bool) {
	first, second := targetTrack-1, targetTrack+1
	if opts.TieBreak == TieBreakAbove {
		first, second = targetTrack+1, targetTrack-1
	}
	for _, c := range [3]int{targetTrack, first, second} {
		if laneFree(el.Role, start, end, c, elements, tracks, el.ID) {
			return c, true
		}
	}
	return 0, false
}

// ShiftIndices renumbers stored track indices after a track insertion:
// every element at or above insertedAt moves up by one. TrackIDs are
// untouched and unaffected elements are shared, not cloned.
func ShiftIndices(elements []*element.Element, insertedAt int) []*element.Element {
	out := make([]*element.Element, len(elements))
	for i, e := range elements {
		if e.TrackIndex >= insertedAt {
			c := e.Clone()
			c.TrackIndex++
			out[i] = c
		} else {
			out[i] = e
		}
	}
	return out
}

// redirect remaps a track drop whose lane cannot host the element's role
// to the nearest role-compatible unlocked lane, nearer lanes first and
// ties broken by the gap policy. When no lane qualifies the drop becomes
// a gap insertion at the original index.
func redirect(role track.Role, target DropTarget, tracks []*track.Track, opts Options) DropTarget {
	t := clampLane(target.TrackIndex, len(tracks))
	if laneCompatible(role, t, tracks) {
		return OnTrack(t)
	}
	for d := 1; d < len(tracks); d++ {
		first, second := t-d, t+d
		if opts.TieBreak == TieBreakAbove {
			first, second = t+d, t-d
		}
		if laneCompatible(role, first, tracks) {
			return OnTrack(first)
		}
		if laneCompatible(role, second, tracks) {
			return OnTrack(second)
		}
	}
	return InGap(t)
}

// laneCompatible reports whether the lane's classification admits the
// role at all, ignoring what currently occupies it. Locked lanes admit
// nothing.
func laneCompatible(role track.Role, index int, tracks []*track.Track) bool {
	tr := track.At(tracks, index)
	if tr == nil || tr.Locked {
		return false
	}
	return !track.RolesConflict(role, tr.Kind)
}

// laneFree reports whether the element may occupy [start, end) on the
// lane: it exists, is unlocked, matches the role, and carries neither a
// role conflict nor a time overlap against stored elements.
func laneFree(role track.Role, start, end element.Frame, index int, elements []*element.Element, tracks []*track.Track, exclude element.ID) bool {
	if !laneCompatible(role, index, tracks) {
		return false
	}
	if element.HasRoleConflict(role, index, elements, exclude) {
		return false
	}
	return !element.HasOverlapOnTrack(start, end, index, elements, exclude)
}

func clampLane(index, count int) int {
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

func clampGap(index, count int) int {
	if index < 1 {
		return 1
	}
	if index > count {
		return count
	}
	return index
}
