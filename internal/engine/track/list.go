package track

// List operations treat []*Track as an immutable value: every change
// returns a new slice so that prior snapshots stay valid.

// At returns the track at index, or nil when out of range.
func At(tracks []*Track, index int) *Track {
	if index < 0 || index >= len(tracks) {
		return nil
	}
	return tracks[index]
}

// IsLocked reports whether the track at index exists and is locked.
func IsLocked(tracks []*Track, index int) bool {
	t := At(tracks, index)
	return t != nil && t.Locked
}

// InsertAt returns a new slice with a fresh track of the given kind at
// index. Existing tracks keep their IDs and order; callers renumber
// element indices separately. An out-of-range index is clamped to the
// valid insertion range [0, len].
func InsertAt(tracks []*Track, index int, kind Role) ([]*Track, *Track) {
	if index < 0 {
		index = 0
	}
	if index > len(tracks) {
		index = len(tracks)
	}

	fresh := New(kind)
	next := make([]*Track, 0, len(tracks)+1)
	next = append(next, tracks[:index]...)
	next = append(next, fresh)
	next = append(next, tracks[index:]...)
	return next, fresh
}

// WithFlag returns a new slice where the track at index carries the flag
// value. The input slice comes back unchanged (same reference) when the
// index is out of range or the flag already has that value, so callers
// can detect the no-op.
func WithFlag(tracks []*Track, index int, flag Flag, value bool) []*Track {
	t := At(tracks, index)
	if t == nil || t.Flag(flag) == value {
		return tracks
	}

	next := make([]*Track, len(tracks))
	copy(next, tracks)
	c := t.Clone()
	c.setFlag(flag, value)
	next[index] = c
	return next
}

// PruneTrailing returns a new slice with empty trailing tracks removed.
// The main track (index 0) is never pruned. occupied reports whether any
// element is stored at the given index. The input slice comes back
// unchanged when nothing is pruned.
func PruneTrailing(tracks []*Track, occupied func(index int) bool) []*Track {
	keep := len(tracks)
	for keep > 1 && !occupied(keep-1) {
		keep--
	}
	if keep == len(tracks) {
		return tracks
	}

	next := make([]*Track, keep)
	copy(next, tracks[:keep])
	return next
}
