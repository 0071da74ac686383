// Package playback provides the frame clock for the timeline playhead.
//
// Playback is not a concurrency concern here: the clock is plain state
// advanced by whoever owns the tick loop, and the resulting whole-frame
// deltas flow through the same synchronous commit path as manual edits.
package playback
