package placement

import (
	"testing"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

func TestReflowMainAlreadyCompact(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 10, 20, 0)
	elements := []*element.Element{a, b}
	tracks := makeTracks(track.RoleClip)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if changed {
		t.Error("a compact track should report no change")
	}
	if &got[0] != &elements[0] {
		t.Error("a no-op reflow should return the input slice")
	}
}

func TestReflowMainTrivialTracks(t *testing.T) {
	tracks := makeTracks(track.RoleClip)

	if _, changed := ReflowMain(nil, tracks, DefaultTolerance); changed {
		t.Error("empty timeline should not change")
	}

	solo := []*element.Element{place("solo", track.RoleClip, 50, 60, 0)}
	if _, changed := ReflowMain(solo, tracks, DefaultTolerance); changed {
		t.Error("a single element is always compact")
	}
}

func TestReflowMainClosesGap(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	elements := []*element.Element{a, b}
	tracks := makeTracks(track.RoleClip)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("gap should trigger a reflow")
	}
	if got[0] != a {
		t.Error("the anchored element should be shared, not cloned")
	}
	if got[1].Start != 10 || got[1].End != 20 {
		t.Errorf("b reflowed to [%d,%d), want [10,20)", got[1].Start, got[1].End)
	}
	if b.Start != 20 {
		t.Error("reflow must not mutate its input")
	}
}

func TestReflowMainAnchorsFirstElement(t *testing.T) {
	a := place("a", track.RoleClip, 50, 60, 0)
	b := place("b", track.RoleClip, 100, 110, 0)
	elements := []*element.Element{b, a} // stored order does not matter
	tracks := makeTracks(track.RoleClip)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("gap should trigger a reflow")
	}
	// a starts earlier, so it anchors; it is not pulled back to frame 0.
	if byName(t, got, "a").Start != 50 {
		t.Errorf("anchor start = %d, want 50", byName(t, got, "a").Start)
	}
	if e := byName(t, got, "b"); e.Start != 60 || e.End != 70 {
		t.Errorf("b reflowed to [%d,%d), want [60,70)", e.Start, e.End)
	}
}

func TestReflowMainShiftsAttachedChildren(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	c := place("c", track.RoleOverlay, 21, 29, 1)
	d := place("d", track.RoleEffect, 22, 28, 2)
	elements := []*element.Element{a, b, c, d}
	tracks := makeTracks(track.RoleClip, track.RoleOverlay, track.RoleEffect)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("gap should trigger a reflow")
	}
	if e := byName(t, got, "b"); e.Start != 10 || e.End != 20 {
		t.Errorf("b reflowed to [%d,%d), want [10,20)", e.Start, e.End)
	}
	if e := byName(t, got, "c"); e.Start != 11 || e.End != 19 {
		t.Errorf("attached c moved to [%d,%d), want [11,19)", e.Start, e.End)
	}
	if e := byName(t, got, "d"); e.Start != 12 || e.End != 18 {
		t.Errorf("transitively attached d moved to [%d,%d), want [12,18)", e.Start, e.End)
	}
}

func TestReflowMainBlockedChildStays(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	c := place("c", track.RoleOverlay, 22, 28, 1)
	blocker := place("blocker", track.RoleOverlay, 10, 14, 1)
	elements := []*element.Element{a, b, c, blocker}
	tracks := makeTracks(track.RoleClip, track.RoleOverlay)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("gap should trigger a reflow")
	}
	if e := byName(t, got, "b"); e.Start != 10 {
		t.Errorf("b start = %d, want 10", e.Start)
	}
	// c's shifted interval [12,18) would overlap the blocker, so it keeps
	// its place rather than breaking the track invariant.
	if e := byName(t, got, "c"); e.Start != 22 || e.End != 28 {
		t.Errorf("blocked child moved to [%d,%d), want [22,28)", e.Start, e.End)
	}
	if e := byName(t, got, "blocker"); e.Start != 10 {
		t.Errorf("unattached element moved to start %d, want 10", e.Start)
	}
}

func TestReflowMainIdempotent(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	c := place("c", track.RoleOverlay, 21, 29, 1)
	elements := []*element.Element{a, b, c}
	tracks := makeTracks(track.RoleClip, track.RoleOverlay)

	once, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("first pass should change the layout")
	}
	twice, changed := ReflowMain(once, tracks, DefaultTolerance)
	if changed {
		t.Error("second pass should be a no-op")
	}
	if &twice[0] != &once[0] {
		t.Error("second pass should return its input slice")
	}
}

func TestReflowMainLockedMainTrack(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	elements := []*element.Element{a, b}

	tracks := makeTracks(track.RoleClip)
	tracks = track.WithFlag(tracks, 0, track.FlagLocked, true)

	if _, changed := ReflowMain(elements, tracks, DefaultTolerance); changed {
		t.Error("a locked main track must not be reflowed")
	}
}

func TestReflowMainLockedChildTrackStays(t *testing.T) {
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 20, 30, 0)
	c := place("c", track.RoleOverlay, 21, 29, 1)
	elements := []*element.Element{a, b, c}

	tracks := makeTracks(track.RoleClip, track.RoleOverlay)
	tracks = track.WithFlag(tracks, 1, track.FlagLocked, true)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("the main track itself should still reflow")
	}
	if e := byName(t, got, "b"); e.Start != 10 {
		t.Errorf("b start = %d, want 10", e.Start)
	}
	if e := byName(t, got, "c"); e.Start != 21 || e.End != 29 {
		t.Errorf("locked-track child moved to [%d,%d), want [21,29)", e.Start, e.End)
	}
}

func TestReflowMainChildNearSeamClaimedOnce(t *testing.T) {
	// x sits within tolerance of both a's end and b's start. The earlier
	// element claims it, so b's shift leaves it alone.
	a := place("a", track.RoleClip, 0, 10, 0)
	b := place("b", track.RoleClip, 12, 22, 0)
	x := place("x", track.RoleOverlay, 9, 13, 1)
	elements := []*element.Element{a, b, x}
	tracks := makeTracks(track.RoleClip, track.RoleOverlay)

	got, changed := ReflowMain(elements, tracks, DefaultTolerance)
	if !changed {
		t.Fatal("gap should trigger a reflow")
	}
	if e := byName(t, got, "b"); e.Start != 10 || e.End != 20 {
		t.Errorf("b reflowed to [%d,%d), want [10,20)", e.Start, e.End)
	}
	if e := byName(t, got, "x"); e.Start != 9 || e.End != 13 {
		t.Errorf("x moved to [%d,%d), want [9,13)", e.Start, e.End)
	}
}

func byName(t *testing.T, elements []*element.Element, name string) *element.Element {
	t.Helper()
	for _, e := range elements {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("element %q not found", name)
	return nil
}
