package track

import "testing"

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleClip, "clip"},
		{RoleOverlay, "overlay"},
		{RoleEffect, "effect"},
		{RoleTransition, "transition"},
		{Role(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range []Role{RoleClip, RoleOverlay, RoleEffect, RoleTransition} {
		got, ok := ParseRole(role.String())
		if !ok || got != role {
			t.Errorf("ParseRole(%q) = %v, %v", role.String(), got, ok)
		}
	}

	if _, ok := ParseRole("audio"); ok {
		t.Error("ParseRole accepted an unknown name")
	}
}

func TestRolesConflict(t *testing.T) {
	roles := []Role{RoleClip, RoleOverlay, RoleEffect, RoleTransition}
	for _, a := range roles {
		for _, b := range roles {
			want := a != b
			if got := RolesConflict(a, b); got != want {
				t.Errorf("RolesConflict(%v, %v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestNewTrack(t *testing.T) {
	tr := New(RoleOverlay)
	if tr.ID == "" {
		t.Error("new track has empty ID")
	}
	if tr.Kind != RoleOverlay {
		t.Errorf("Kind = %v, want %v", tr.Kind, RoleOverlay)
	}
	if tr.Hidden || tr.Locked || tr.Muted || tr.Solo {
		t.Error("new track should have all flags clear")
	}
}

func TestInsertAt(t *testing.T) {
	a, b := New(RoleClip), New(RoleOverlay)
	tracks := []*Track{a, b}

	next, fresh := InsertAt(tracks, 1, RoleEffect)

	if len(next) != 3 {
		t.Fatalf("len = %d, want 3", len(next))
	}
	if next[0] != a || next[1] != fresh || next[2] != b {
		t.Error("insertion order wrong")
	}
	if fresh.Kind != RoleEffect {
		t.Errorf("fresh kind = %v, want %v", fresh.Kind, RoleEffect)
	}
	if len(tracks) != 2 {
		t.Error("input slice was mutated")
	}
}

func TestInsertAtClamps(t *testing.T) {
	tracks := []*Track{New(RoleClip)}

	next, _ := InsertAt(tracks, 99, RoleOverlay)
	if len(next) != 2 || next[0] != tracks[0] {
		t.Error("out-of-range insert should append")
	}

	next, fresh := InsertAt(tracks, -5, RoleOverlay)
	if next[0] != fresh {
		t.Error("negative insert should prepend")
	}
}

func TestWithFlag(t *testing.T) {
	tracks := []*Track{New(RoleClip), New(RoleOverlay)}

	next := WithFlag(tracks, 1, FlagLocked, true)
	if next[1] == tracks[1] {
		t.Fatal("WithFlag did not clone the changed track")
	}
	if !next[1].Locked {
		t.Error("flag not set")
	}
	if tracks[1].Locked {
		t.Error("original track was mutated")
	}
	if next[0] != tracks[0] {
		t.Error("untouched track should keep its pointer")
	}
}

func TestWithFlagNoOp(t *testing.T) {
	tracks := []*Track{New(RoleClip)}

	if got := WithFlag(tracks, 0, FlagMuted, false); &got[0] != &tracks[0] {
		t.Error("setting an already-clear flag should return the input slice")
	}
	if got := WithFlag(tracks, 7, FlagMuted, true); &got[0] != &tracks[0] {
		t.Error("out-of-range index should return the input slice")
	}
}

func TestIsLocked(t *testing.T) {
	tracks := WithFlag([]*Track{New(RoleClip), New(RoleOverlay)}, 1, FlagLocked, true)

	if IsLocked(tracks, 0) {
		t.Error("track 0 should not be locked")
	}
	if !IsLocked(tracks, 1) {
		t.Error("track 1 should be locked")
	}
	if IsLocked(tracks, -1) || IsLocked(tracks, 2) {
		t.Error("out-of-range indices are never locked")
	}
}

func TestPruneTrailing(t *testing.T) {
	tracks := []*Track{New(RoleClip), New(RoleOverlay), New(RoleOverlay), New(RoleEffect)}
	occupied := map[int]bool{0: true, 1: true}

	next := PruneTrailing(tracks, func(i int) bool { return occupied[i] })

	if len(next) != 2 {
		t.Fatalf("len = %d, want 2", len(next))
	}
	if next[0] != tracks[0] || next[1] != tracks[1] {
		t.Error("surviving tracks should keep their pointers")
	}
}

func TestPruneTrailingKeepsInterior(t *testing.T) {
	tracks := []*Track{New(RoleClip), New(RoleOverlay), New(RoleEffect)}
	// Track 1 is empty but track 2 is occupied: nothing trailing to prune.
	occupied := map[int]bool{0: true, 2: true}

	next := PruneTrailing(tracks, func(i int) bool { return occupied[i] })
	if len(next) != 3 {
		t.Errorf("len = %d, want 3 (interior empties stay)", len(next))
	}
}

func TestPruneTrailingNeverPrunesMain(t *testing.T) {
	tracks := []*Track{New(RoleClip)}

	next := PruneTrailing(tracks, func(int) bool { return false })
	if len(next) != 1 {
		t.Error("main track must survive pruning")
	}
}
