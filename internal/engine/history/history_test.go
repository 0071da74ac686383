package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/store"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// Helper to build a snapshot holding a single named element.
func snapshotNamed(name string) store.Snapshot {
	return store.Snapshot{
		Elements: []*element.Element{element.New(name, track.RoleClip, 0, 10, 0, "")},
		Tracks:   []*track.Track{track.New(track.RoleClip)},
	}
}

func name(snap store.Snapshot) string {
	if len(snap.Elements) == 0 {
		return ""
	}
	return snap.Elements[0].Name
}

func TestNewHistory(t *testing.T) {
	h := NewHistory(50)
	if h.MaxEntries() != 50 {
		t.Errorf("MaxEntries = %d, want 50", h.MaxEntries())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should have nothing to undo or redo")
	}
}

func TestNewHistoryDefaultLimit(t *testing.T) {
	for _, limit := range []int{0, -5} {
		h := NewHistory(limit)
		if h.MaxEntries() != DefaultLimit {
			t.Errorf("NewHistory(%d).MaxEntries() = %d, want %d", limit, h.MaxEntries(), DefaultLimit)
		}
	}
}

func TestRecordAndUndo(t *testing.T) {
	h := NewHistory(10)

	pre := snapshotNamed("before")
	h.Record(pre, "move")

	if !h.CanUndo() {
		t.Fatal("should be able to undo after recording")
	}

	restored, err := h.Undo(snapshotNamed("after"))
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if name(restored) != "before" {
		t.Errorf("restored %q, want %q", name(restored), "before")
	}
	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}
	if !h.CanRedo() {
		t.Error("the undone state should be redoable")
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory(10)
	_, err := h.Undo(snapshotNamed("current"))
	if !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
	if h.CanRedo() {
		t.Error("a failed undo must not grow the redo stack")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory(10)
	_, err := h.Redo(snapshotNamed("current"))
	if !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("err = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(10)

	h.Record(snapshotNamed("v1"), "edit")
	current := snapshotNamed("v2")

	restored, err := h.Undo(current)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if name(restored) != "v1" {
		t.Errorf("undo restored %q, want v1", name(restored))
	}

	replayed, err := h.Redo(restored)
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if name(replayed) != "v2" {
		t.Errorf("redo restored %q, want v2", name(replayed))
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("after redo the step should be undoable again")
	}
}

func TestRecordClearsRedoStack(t *testing.T) {
	h := NewHistory(10)

	h.Record(snapshotNamed("v1"), "edit")
	if _, err := h.Undo(snapshotNamed("v2")); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}

	h.Record(snapshotNamed("v1"), "new edit")
	if h.CanRedo() {
		t.Error("a new mutation must clear the redo stack")
	}
}

// Sequential edits fully undone then fully redone come back in order.
func TestDeepUndoRedo(t *testing.T) {
	h := NewHistory(10)

	const steps = 5
	for i := 0; i < steps; i++ {
		h.Record(snapshotNamed(version(i)), "edit")
	}
	current := snapshotNamed(version(steps))

	for i := steps - 1; i >= 0; i-- {
		restored, err := h.Undo(current)
		if err != nil {
			t.Fatalf("undo %d failed: %v", i, err)
		}
		if name(restored) != version(i) {
			t.Errorf("undo restored %q, want %q", name(restored), version(i))
		}
		current = restored
	}

	for i := 1; i <= steps; i++ {
		restored, err := h.Redo(current)
		if err != nil {
			t.Fatalf("redo %d failed: %v", i, err)
		}
		if name(restored) != version(i) {
			t.Errorf("redo restored %q, want %q", name(restored), version(i))
		}
		current = restored
	}
}

func version(i int) string { return fmt.Sprintf("v%d", i) }

func TestLimitEvictsOldest(t *testing.T) {
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Record(snapshotNamed(version(i)), "edit")
	}

	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", h.UndoCount())
	}

	// The two oldest entries are gone; undos bottom out at v2.
	current := snapshotNamed("v5")
	var last store.Snapshot
	for h.CanUndo() {
		restored, err := h.Undo(current)
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		last = restored
		current = restored
	}
	if name(last) != "v2" {
		t.Errorf("deepest restorable state is %q, want v2", name(last))
	}
}

func TestSetMaxEntriesTrims(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 6; i++ {
		h.Record(snapshotNamed(version(i)), "edit")
	}

	h.SetMaxEntries(2)
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}

	h.SetMaxEntries(0)
	if h.MaxEntries() != DefaultLimit {
		t.Errorf("MaxEntries = %d, want default", h.MaxEntries())
	}
}

func TestPeek(t *testing.T) {
	h := NewHistory(10)

	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty history should report false")
	}

	h.Record(snapshotNamed("v1"), "split")
	info, ok := h.PeekUndo()
	if !ok || info.Label != "split" {
		t.Errorf("PeekUndo = (%+v, %v), want the split entry", info, ok)
	}
	if info.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if h.UndoCount() != 1 {
		t.Error("peek must not consume the entry")
	}

	if _, err := h.Undo(snapshotNamed("v2")); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	info, ok = h.PeekRedo()
	if !ok || info.Label != "split" {
		t.Errorf("PeekRedo = (%+v, %v), want the split entry", info, ok)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(10)
	h.Record(snapshotNamed("v1"), "edit")
	if _, err := h.Undo(snapshotNamed("v2")); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	h.Record(snapshotNamed("v1b"), "edit")

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
	if h.UndoCount() != 0 || h.RedoCount() != 0 {
		t.Error("counts should be zero after Clear")
	}
}
