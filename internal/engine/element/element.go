package element

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/reelsmith/timeline/internal/engine/track"
)

// Frame is a position or duration on the timeline, measured in frames.
// Element intervals are half-open: [Start, End).
type Frame int64

// ID uniquely identifies an element for its entire lifetime.
// IDs survive moves, splits keep the original ID on the left part.
type ID string

// NewID returns a fresh element identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Element is a single item placed on the timeline: a clip, overlay,
// effect, or transition. Elements are treated as immutable; editing
// operations clone and replace rather than mutate in place.
type Element struct {
	ID   ID
	Name string
	Role track.Role

	// Start and End bound the half-open interval [Start, End).
	// End is always strictly greater than Start.
	Start Frame
	End   Frame

	// TrackIndex is the vertical position of the element's track at the
	// time it was placed. TrackID names the track itself and remains
	// stable when surrounding tracks are inserted or removed.
	TrackIndex int
	TrackID    track.ID

	// AnchorID links this element to a parent it is attached to.
	// Empty for free-standing elements.
	AnchorID ID
}

// New creates an element with a fresh ID on the given track.
func New(name string, role track.Role, start, end Frame, trackIndex int, trackID track.ID) *Element {
	return &Element{
		ID:         NewID(),
		Name:       name,
		Role:       role,
		Start:      start,
		End:        end,
		TrackIndex: trackIndex,
		TrackID:    trackID,
	}
}

// Clone returns a copy of the element.
func (e *Element) Clone() *Element {
	c := *e
	return &c
}

// Duration returns the length of the element in frames.
func (e *Element) Duration() Frame {
	return e.End - e.Start
}

// String returns a compact description for logs and debugging.
func (e *Element) String() string {
	return fmt.Sprintf("%s %s [%d,%d) track=%d", e.Role, e.Name, e.Start, e.End, e.TrackIndex)
}
