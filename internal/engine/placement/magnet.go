package placement

import (
	"sort"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// ReflowMain compacts the main track: elements keep their start order,
// the first one stays anchored, and every later one is shifted so it
// begins exactly where the previous one ends. Children attached to a
// shifted element shift by the same delta when their own lane is free at
// the new position; otherwise they stay put so no overlap is introduced.
// A locked main track disables the pass.
//
// The pass is idempotent. When the track is already compact the input
// slice is returned unchanged with a false flag, so callers can detect
// the no-op by reference.
func ReflowMain(elements []*element.Element, tracks []*track.Track, tolerance element.Frame) ([]*element.Element, bool) {
	if track.IsLocked(tracks, 0) {
		return elements, false
	}

	var mains []int
	for i, e := range elements {
		if e.TrackIndex == 0 {
			mains = append(mains, i)
		}
	}
	if len(mains) < 2 {
		return elements, false
	}
	sort.Slice(mains, func(i, j int) bool {
		a, b := elements[mains[i]], elements[mains[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})

	// Children are claimed against pre-reflow positions, earliest main
	// first, one parent per child. Claiming up front keeps a child near
	// a seam from being dragged twice when two parents both match it.
	claimed := map[element.ID]bool{}
	children := make(map[element.ID][]element.ID, len(mains))
	for _, mi := range mains {
		m := elements[mi]
		for _, c := range TransitivelyAttached(m, elements, tracks, tolerance) {
			if claimed[c.ID] || c.TrackIndex == 0 {
				continue
			}
			claimed[c.ID] = true
			children[m.ID] = append(children[m.ID], c.ID)
		}
	}

	out := make([]*element.Element, len(elements))
	copy(out, elements)
	index := make(map[element.ID]int, len(elements))
	for i, e := range elements {
		index[e.ID] = i
	}

	changed := false
	pos := out[mains[0]].End
	for _, mi := range mains[1:] {
		m := out[mi]
		if delta := pos - m.Start; delta != 0 {
			shifted := m.Clone()
			shifted.Start += delta
			shifted.End += delta
			out[mi] = shifted
			changed = true

			for _, cid := range children[m.ID] {
				ci := index[cid]
				c := out[ci]
				ns, ne := c.Start+delta, c.End+delta
				if element.HasOverlapOnTrack(ns, ne, c.TrackIndex, out, c.ID) {
					continue
				}
				cc := c.Clone()
				cc.Start, cc.End = ns, ne
				out[ci] = cc
			}
		}
		pos = out[mi].End
	}

	if !changed {
		return elements, false
	}
	return out, true
}
