package editor

import (
	"time"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/event"
)

// Play starts playback from the current frame.
func (ed *Editor) Play() {
	if ed.clock.IsPlaying() {
		return
	}
	ed.clock.Play()
	ed.publishPlayback()
}

// Pause stops playback, holding the current frame.
func (ed *Editor) Pause() {
	if !ed.clock.IsPlaying() {
		return
	}
	ed.clock.Pause()
	ed.publishPlayback()
}

// TogglePlayback flips between playing and paused.
func (ed *Editor) TogglePlayback() {
	if ed.clock.IsPlaying() {
		ed.Pause()
	} else {
		ed.Play()
	}
}

// IsPlaying reports whether the playhead is advancing.
func (ed *Editor) IsPlaying() bool {
	return ed.clock.IsPlaying()
}

// CurrentFrame returns the playhead position.
func (ed *Editor) CurrentFrame() element.Frame {
	return ed.clock.Frame()
}

// FPS returns the playback frame rate.
func (ed *Editor) FPS() float64 {
	return ed.clock.FPS()
}

// SetCurrentFrame seeks the playhead. Negative frames clamp to zero.
func (ed *Editor) SetCurrentFrame(frame element.Frame) {
	before := ed.clock.Frame()
	ed.clock.SetFrame(frame)
	if ed.clock.Frame() != before {
		ed.publishPlayback()
	}
}

// Tick advances the playhead by wall-clock time. The clock converts
// elapsed time to whole frames and pauses when it reaches the end of
// the last element.
func (ed *Editor) Tick(elapsed time.Duration) {
	if !ed.clock.IsPlaying() {
		return
	}
	before := ed.clock.Frame()
	end := element.MaxEnd(ed.store.Elements())
	frame := ed.clock.Advance(elapsed, end)
	if frame != before || !ed.clock.IsPlaying() {
		ed.publishPlayback()
	}
}

func (ed *Editor) publishPlayback() {
	ed.bus.Publish(event.PlaybackChanged{
		Frame:   ed.clock.Frame(),
		Playing: ed.clock.IsPlaying(),
	})
}
