package editor

import (
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/history"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/playback"
	"github.com/reelsmith/timeline/internal/engine/selection"
	"github.com/reelsmith/timeline/internal/engine/store"
	"github.com/reelsmith/timeline/internal/engine/track"
	"github.com/reelsmith/timeline/internal/event"
)

// Editor is the engine facade: one explicitly constructed instance
// owning the store, history, selection, and playback clock, with every
// mutation funneled through its commit path. Instances are independent,
// so several editors can coexist in one process.
//
// The editor is synchronous and single-threaded: confine each instance
// to one goroutine and feed it one discrete event at a time. Subscribers
// run inline on that same goroutine.
type Editor struct {
	store *store.Store
	hist  *history.History
	sel   *selection.Set
	clock *playback.Clock
	bus   *event.Bus

	resolve   placement.Options
	tolerance element.Frame
}

// Option configures an Editor at construction.
type Option func(*Editor)

// WithHistoryLimit bounds the undo stack.
func WithHistoryLimit(limit int) Option {
	return func(ed *Editor) {
		ed.hist.SetMaxEntries(limit)
	}
}

// WithMagnet sets the initial main-track magnet state.
func WithMagnet(enabled bool) Option {
	return func(ed *Editor) {
		ed.store.SetMagnet(enabled)
	}
}

// WithTieBreak sets the gap-drop tie-break policy.
func WithTieBreak(tb placement.TieBreak) Option {
	return func(ed *Editor) {
		ed.resolve.TieBreak = tb
	}
}

// WithAttachmentTolerance sets the attachment slack in frames.
func WithAttachmentTolerance(frames element.Frame) Option {
	return func(ed *Editor) {
		if frames >= 0 {
			ed.tolerance = frames
		}
	}
}

// WithFPS sets the playback frame rate.
func WithFPS(fps float64) Option {
	return func(ed *Editor) {
		ed.clock.SetFPS(fps)
	}
}

// WithInitialState seeds the editor with elements and tracks, without a
// history entry. A nil tracks slice keeps the default main track.
func WithInitialState(elements []*element.Element, tracks []*track.Track) Option {
	return func(ed *Editor) {
		if tracks == nil {
			tracks = ed.store.Tracks()
		}
		ed.store.Apply(elements, tracks)
		ed.sel.Reconcile(ed.store.Elements(), ed.store.Tracks())
	}
}

// New creates an editor with an empty timeline: no elements, the main
// track, magnet off, nothing to undo.
func New(opts ...Option) *Editor {
	ed := &Editor{
		store:     store.New(),
		hist:      history.NewHistory(history.DefaultLimit),
		sel:       selection.NewSet(),
		clock:     playback.NewClock(playback.DefaultFPS),
		bus:       event.NewBus(),
		tolerance: placement.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(ed)
	}
	return ed
}

// Elements returns the current element array. Read-only.
func (ed *Editor) Elements() []*element.Element {
	return ed.store.Elements()
}

// Tracks returns the current track stack. Read-only.
func (ed *Editor) Tracks() []*track.Track {
	return ed.store.Tracks()
}

// ElementByID returns the element with the given id.
func (ed *Editor) ElementByID(id element.ID) (*element.Element, bool) {
	e := element.ByID(ed.store.Elements(), id)
	return e, e != nil
}

// TrackAssignment returns the derived element-to-track mapping.
func (ed *Editor) TrackAssignment() map[element.ID]int {
	return ed.store.TrackAssignment()
}

// Revision returns the store revision.
func (ed *Editor) Revision() uint64 {
	return uint64(ed.store.Revision())
}

// MagnetEnabled reports whether the main-track magnet is on.
func (ed *Editor) MagnetEnabled() bool {
	return ed.store.MagnetEnabled()
}

// AttachmentTolerance returns the attachment slack in frames.
func (ed *Editor) AttachmentTolerance() element.Frame {
	return ed.tolerance
}

// TieBreak returns the gap-drop tie-break policy.
func (ed *Editor) TieBreak() placement.TieBreak {
	return ed.resolve.TieBreak
}

// CanUndo reports whether an undo step is available.
func (ed *Editor) CanUndo() bool {
	return ed.hist.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (ed *Editor) CanRedo() bool {
	return ed.hist.CanRedo()
}

// UndoCount returns the number of undo steps available.
func (ed *Editor) UndoCount() int {
	return ed.hist.UndoCount()
}

// RedoCount returns the number of redo steps available.
func (ed *Editor) RedoCount() int {
	return ed.hist.RedoCount()
}

// NextUndo describes the mutation an undo would revert.
func (ed *Editor) NextUndo() (history.OperationInfo, bool) {
	return ed.hist.PeekUndo()
}

// NextRedo describes the mutation a redo would replay.
func (ed *Editor) NextRedo() (history.OperationInfo, bool) {
	return ed.hist.PeekRedo()
}

// Subscribe registers a handler for engine events.
func (ed *Editor) Subscribe(topic event.Topic, handler event.Handler) *event.Subscription {
	return ed.bus.Subscribe(topic, handler)
}

// SubscribeFunc registers a function handler for engine events.
func (ed *Editor) SubscribeFunc(topic event.Topic, fn event.HandlerFunc) *event.Subscription {
	return ed.bus.SubscribeFunc(topic, fn)
}

// Unsubscribe removes a subscription.
func (ed *Editor) Unsubscribe(sub *event.Subscription) {
	ed.bus.Unsubscribe(sub)
}

// Publish delivers an event on the editor's bus. The engine publishes
// its own mutations; this is for owners sharing the bus for
// application-level events such as configuration reloads.
func (ed *Editor) Publish(ev event.Event) {
	ed.bus.Publish(ev)
}

// SetHistoryLimit rebounds the undo stack, trimming oldest entries.
func (ed *Editor) SetHistoryLimit(limit int) {
	ed.hist.SetMaxEntries(limit)
}

// ClearHistory discards all undo and redo state. The current timeline is
// untouched; it simply becomes the new floor that undo cannot pass.
func (ed *Editor) ClearHistory() {
	if !ed.hist.CanUndo() && !ed.hist.CanRedo() {
		return
	}
	ed.hist.Clear()
	ed.publishHistory()
}

// SetTieBreak changes the gap-drop tie-break policy for later edits.
func (ed *Editor) SetTieBreak(tb placement.TieBreak) {
	ed.resolve.TieBreak = tb
}

// SetAttachmentTolerance changes the attachment slack for later edits.
// Negative values are ignored.
func (ed *Editor) SetAttachmentTolerance(frames element.Frame) {
	if frames >= 0 {
		ed.tolerance = frames
	}
}

// SetFPS changes the playback frame rate.
func (ed *Editor) SetFPS(fps float64) {
	ed.clock.SetFPS(fps)
}
