package history

import (
	"errors"
	"time"

	"github.com/reelsmith/timeline/internal/engine/store"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit bounds the past stack when no explicit limit is given.
const DefaultLimit = 100

// historyEntry wraps a snapshot with metadata.
type historyEntry struct {
	snapshot  store.Snapshot
	label     string
	timestamp time.Time
}

// OperationInfo describes one recorded mutation.
type OperationInfo struct {
	Label     string
	Timestamp time.Time
}

// History manages undo/redo over store snapshots. Every structural
// mutation records the pre-mutation snapshot; undo and redo exchange the
// current state against the stacks. The engine runs single-threaded, so
// no locking happens here.
type History struct {
	undoStack []*historyEntry
	redoStack []*historyEntry

	maxEntries int
}

// NewHistory creates a history manager. A non-positive limit falls back
// to DefaultLimit.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultLimit
	}
	return &History{maxEntries: maxEntries}
}

// Record pushes the pre-mutation snapshot onto the undo stack and
// clears the redo stack. Once the stack outgrows the limit the oldest
// entries fall off.
func (h *History) Record(pre store.Snapshot, label string) {
	h.undoStack = append(h.undoStack, &historyEntry{
		snapshot:  pre,
		label:     label,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent pre-mutation snapshot and returns it for the
// caller to install. The passed current state moves onto the redo stack.
func (h *History) Undo(current store.Snapshot) (store.Snapshot, error) {
	if len(h.undoStack) == 0 {
		return store.Snapshot{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.redoStack = append(h.redoStack, &historyEntry{
		snapshot:  current,
		label:     entry.label,
		timestamp: time.Now(),
	})
	return entry.snapshot, nil
}

// Redo pops the most recently undone state and returns it for the
// caller to install. The passed current state moves onto the undo stack.
func (h *History) Redo(current store.Snapshot) (store.Snapshot, error) {
	if len(h.redoStack) == 0 {
		return store.Snapshot{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.undoStack = append(h.undoStack, &historyEntry{
		snapshot:  current,
		label:     entry.label,
		timestamp: time.Now(),
	})
	return entry.snapshot, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	entry := h.undoStack[len(h.undoStack)-1]
	return OperationInfo{Label: entry.label, Timestamp: entry.timestamp}, true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	entry := h.redoStack[len(h.redoStack)-1]
	return OperationInfo{Label: entry.label, Timestamp: entry.timestamp}, true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// SetMaxEntries changes the maximum number of undo entries. If the
// current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultLimit
	}
	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
