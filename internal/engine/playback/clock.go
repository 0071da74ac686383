package playback

import (
	"time"

	"github.com/reelsmith/timeline/internal/engine/element"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30.0

// Clock turns wall-clock time into whole-frame playhead positions.
// Elapsed time accumulates as fractional frames; only whole frames move
// the playhead, and the remainder carries over to the next tick, so no
// time is lost to rounding at any frame rate.
//
// The clock holds no timer of its own. The owner calls Advance from its
// tick source, which keeps playback on the same synchronous turn as
// every other mutation.
type Clock struct {
	fps     float64
	playing bool
	frame   element.Frame
	acc     float64
}

// NewClock creates a paused clock at frame zero. A non-positive rate
// falls back to DefaultFPS.
func NewClock(fps float64) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Clock{fps: fps}
}

// Play starts the clock.
func (c *Clock) Play() {
	c.playing = true
}

// Pause stops the clock. The fractional remainder is dropped so a
// resume starts clean.
func (c *Clock) Pause() {
	c.playing = false
	c.acc = 0
}

// IsPlaying reports whether the clock is running.
func (c *Clock) IsPlaying() bool {
	return c.playing
}

// Frame returns the current playhead position.
func (c *Clock) Frame() element.Frame {
	return c.frame
}

// SetFrame moves the playhead. Negative positions clamp to zero; the
// fractional remainder resets because a seek breaks continuity.
func (c *Clock) SetFrame(frame element.Frame) {
	if frame < 0 {
		frame = 0
	}
	c.frame = frame
	c.acc = 0
}

// FPS returns the configured frame rate.
func (c *Clock) FPS() float64 {
	return c.fps
}

// SetFPS changes the frame rate. Non-positive rates are ignored.
func (c *Clock) SetFPS(fps float64) {
	if fps <= 0 {
		return
	}
	c.fps = fps
}

// Advance moves the playhead by the whole frames covered by elapsed and
// returns the new position. end is the sequence length: reaching it
// clamps the playhead there and pauses the clock. A paused clock never
// moves.
func (c *Clock) Advance(elapsed time.Duration, end element.Frame) element.Frame {
	if !c.playing {
		return c.frame
	}

	c.acc += elapsed.Seconds() * c.fps
	whole := element.Frame(c.acc)
	if whole > 0 {
		c.acc -= float64(whole)
		c.frame += whole
	}

	if c.frame >= end {
		c.frame = end
		c.playing = false
		c.acc = 0
	}
	return c.frame
}
