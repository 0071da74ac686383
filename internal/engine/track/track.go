package track

import "github.com/google/uuid"

// Role categorizes timeline elements and governs which tracks they may
// occupy. The set is closed; switches over Role are exhaustive.
type Role uint8

const (
	// RoleClip is primary footage. The main track hosts clips only.
	RoleClip Role = iota
	// RoleOverlay is title or picture-in-picture content stacked above clips.
	RoleOverlay
	// RoleEffect is a time-ranged effect applied to the material below it.
	RoleEffect
	// RoleTransition bridges two adjacent cuts.
	RoleTransition
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleClip:
		return "clip"
	case RoleOverlay:
		return "overlay"
	case RoleEffect:
		return "effect"
	case RoleTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// ParseRole parses a role name. The second return is false for names
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "clip":
		return RoleClip, true
	case "overlay":
		return RoleOverlay, true
	case "effect":
		return RoleEffect, true
	case "transition":
		return RoleTransition, true
	default:
		return RoleClip, false
	}
}

// RolesConflict reports whether elements of roles a and b may not share a
// track, irrespective of time placement. Equal roles always share (time
// overlap is checked separately); differing roles never do.
func RolesConflict(a, b Role) bool {
	switch a {
	case RoleClip:
		return b != RoleClip
	case RoleOverlay:
		return b != RoleOverlay
	case RoleEffect:
		return b != RoleEffect
	case RoleTransition:
		return b != RoleTransition
	default:
		return true
	}
}

// ID uniquely identifies a track. It survives index renumbering.
type ID string

// NewID returns a fresh track ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Flag identifies one boolean track flag.
type Flag uint8

const (
	// FlagHidden excludes the track from display output.
	FlagHidden Flag = iota
	// FlagLocked makes the track immutable: its elements cannot move and
	// the track is never a placement candidate.
	FlagLocked
	// FlagMuted silences the track's audio.
	FlagMuted
	// FlagSolo plays this track alone.
	FlagSolo
)

// String returns the lowercase flag name.
func (f Flag) String() string {
	switch f {
	case FlagHidden:
		return "hidden"
	case FlagLocked:
		return "locked"
	case FlagMuted:
		return "muted"
	case FlagSolo:
		return "solo"
	default:
		return "unknown"
	}
}

// ParseFlag parses a flag name. The second return is false for names
// outside the closed set.
func ParseFlag(s string) (Flag, bool) {
	switch s {
	case "hidden":
		return FlagHidden, true
	case "locked":
		return FlagLocked, true
	case "muted":
		return FlagMuted, true
	case "solo":
		return FlagSolo, true
	default:
		return FlagHidden, false
	}
}

// Track is one horizontal lane of the timeline. Index 0 is the main track
// and always exists. Stored tracks are immutable: change flags by cloning
// and installing a new containing slice.
type Track struct {
	ID     ID
	Kind   Role
	Hidden bool
	Locked bool
	Muted  bool
	Solo   bool
}

// New creates an unlocked, visible track of the given kind.
func New(kind Role) *Track {
	return &Track{ID: NewID(), Kind: kind}
}

// Clone returns a copy safe to modify before storing.
func (t *Track) Clone() *Track {
	c := *t
	return &c
}

// Flag returns the value of one flag.
func (t *Track) Flag(f Flag) bool {
	switch f {
	case FlagHidden:
		return t.Hidden
	case FlagLocked:
		return t.Locked
	case FlagMuted:
		return t.Muted
	case FlagSolo:
		return t.Solo
	default:
		return false
	}
}

// setFlag writes one flag on a clone-owned track.
func (t *Track) setFlag(f Flag, v bool) {
	switch f {
	case FlagHidden:
		t.Hidden = v
	case FlagLocked:
		t.Locked = v
	case FlagMuted:
		t.Muted = v
	case FlagSolo:
		t.Solo = v
	}
}
