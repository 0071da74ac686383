package event

import "github.com/reelsmith/timeline/internal/engine/element"

// Topic routes events to subscribers.
type Topic string

// Topics published by the engine.
const (
	TopicElements  Topic = "elements"
	TopicTracks    Topic = "tracks"
	TopicSelection Topic = "selection"
	TopicHistory   Topic = "history"
	TopicPlayback  Topic = "playback"
	TopicMagnet    Topic = "magnet"
	TopicConfig    Topic = "config"

	// TopicAll subscribes to every topic.
	TopicAll Topic = "*"
)

// Event is anything that can be published on the bus. Each event type
// names its own topic.
type Event interface {
	EventTopic() Topic
}

// ElementsChanged reports that the element array was replaced.
type ElementsChanged struct {
	Revision uint64
}

// EventTopic implements Event.
func (ElementsChanged) EventTopic() Topic { return TopicElements }

// TracksChanged reports that the track stack was replaced.
type TracksChanged struct {
	Revision uint64
	Count    int
}

// EventTopic implements Event.
func (TracksChanged) EventTopic() Topic { return TopicTracks }

// SelectionChanged reports a new selection state.
type SelectionChanged struct {
	Primary element.ID
	Count   int
}

// EventTopic implements Event.
func (SelectionChanged) EventTopic() Topic { return TopicSelection }

// HistoryChanged reports undo/redo availability after a mutation.
type HistoryChanged struct {
	CanUndo bool
	CanRedo bool
}

// EventTopic implements Event.
func (HistoryChanged) EventTopic() Topic { return TopicHistory }

// PlaybackChanged reports playhead movement or a play/pause flip.
type PlaybackChanged struct {
	Frame   element.Frame
	Playing bool
}

// EventTopic implements Event.
func (PlaybackChanged) EventTopic() Topic { return TopicPlayback }

// MagnetChanged reports the main-track magnet being toggled.
type MagnetChanged struct {
	Enabled bool
}

// EventTopic implements Event.
func (MagnetChanged) EventTopic() Topic { return TopicMagnet }

// ConfigChanged reports a configuration reload.
type ConfigChanged struct {
	Path string
}

// EventTopic implements Event.
func (ConfigChanged) EventTopic() Topic { return TopicConfig }
