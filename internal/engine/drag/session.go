package drag

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
)

// Ghost is the preview geometry of an in-flight drag: where the element
// would land if released now.
type Ghost struct {
	// Start and End are the previewed interval.
	Start element.Frame
	End   element.Frame

	// Lane is the hovered track index, or the seam index when Gap is set.
	Lane int

	// Gap indicates the pointer hovers the seam between two lanes.
	Gap bool
}

// Session tracks one drag gesture as explicit engine-owned state. Every
// update is a plain field assignment driven by a discrete command, and
// nothing here touches the store or the history: the commit happens once,
// from the values Drop hands back.
type Session struct {
	// active indicates a drag is in progress.
	active bool

	// id is the element being dragged.
	id element.ID

	// duration is the element's length, fixed when the drag begins.
	duration element.Frame

	// grabOffset is the distance from the element's start to the frame
	// it was grabbed at, so the element does not jump under the pointer.
	grabOffset element.Frame

	// pointerFrame is the frame under the pointer.
	pointerFrame element.Frame

	// pointerLane is the hovered track index, or the seam index when
	// overGap is set.
	pointerLane int

	// overGap indicates the pointer hovers a seam between lanes.
	overGap bool
}

// NewSession creates an idle drag session.
func NewSession() *Session {
	return &Session{}
}

// Begin starts dragging el from grabFrame. An active session is
// replaced; the previous gesture is discarded.
func (s *Session) Begin(el *element.Element, grabFrame element.Frame) {
	s.active = true
	s.id = el.ID
	s.duration = el.Duration()
	s.grabOffset = grabFrame - el.Start
	if s.grabOffset < 0 {
		s.grabOffset = 0
	}
	if s.grabOffset >= s.duration {
		s.grabOffset = s.duration - 1
	}
	s.pointerFrame = grabFrame
	s.pointerLane = el.TrackIndex
	s.overGap = false
}

// Move updates the pointer position. overGap marks the pointer hovering
// the seam below lane rather than the lane itself. Ignored while idle.
func (s *Session) Move(frame element.Frame, lane int, overGap bool) {
	if !s.active {
		return
	}
	s.pointerFrame = frame
	s.pointerLane = lane
	s.overGap = overGap
}

// Active reports whether a drag is in progress.
func (s *Session) Active() bool {
	return s.active
}

// Pointer returns the pointer frame and lane driving the gesture. The
// third result is false while idle.
func (s *Session) Pointer() (element.Frame, int, bool) {
	if !s.active {
		return 0, 0, false
	}
	return s.pointerFrame, s.pointerLane, true
}

// ElementID returns the dragged element's id, or empty while idle.
func (s *Session) ElementID() element.ID {
	if !s.active {
		return ""
	}
	return s.id
}

// Ghost returns the live preview geometry. The second result is false
// while idle.
func (s *Session) Ghost() (Ghost, bool) {
	if !s.active {
		return Ghost{}, false
	}
	start := s.pointerFrame - s.grabOffset
	if start < 0 {
		start = 0
	}
	return Ghost{
		Start: start,
		End:   start + s.duration,
		Lane:  s.pointerLane,
		Gap:   s.overGap,
	}, true
}

// Target returns the drop target the gesture currently implies. The
// second result is false while idle.
func (s *Session) Target() (placement.DropTarget, bool) {
	if !s.active {
		return placement.DropTarget{}, false
	}
	if s.overGap {
		return placement.InGap(s.pointerLane), true
	}
	return placement.OnTrack(s.pointerLane), true
}

// Drop ends the gesture and returns the parameters for its one commit:
// the dragged element, the interval it was released at, and the drop
// target. ok is false when no drag was active, in which case nothing
// should be committed.
func (s *Session) Drop() (id element.ID, start, end element.Frame, target placement.DropTarget, ok bool) {
	ghost, ok := s.Ghost()
	if !ok {
		return "", 0, 0, placement.DropTarget{}, false
	}
	target, _ = s.Target()
	id = s.id
	s.reset()
	return id, ghost.Start, ghost.End, target, true
}

// Cancel discards the gesture without committing anything.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	*s = Session{}
}
