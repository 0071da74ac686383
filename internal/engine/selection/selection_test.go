package selection

import (
	"testing"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

func TestAddSetsPrimary(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("b")

	if s.Primary() != "b" {
		t.Errorf("Primary = %q, want b", s.Primary())
	}
	if s.Count() != 2 {
		t.Errorf("Count = %d, want 2", s.Count())
	}
	if !s.Contains("a") || !s.Contains("b") {
		t.Error("both ids should be selected")
	}
}

func TestAddRefreshesRecency(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("b")
	s.Add("a")

	if got := s.IDs(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("IDs = %v, want [b a]", got)
	}
	if s.Primary() != "a" {
		t.Errorf("Primary = %q, want a", s.Primary())
	}
}

func TestAddEmptyID(t *testing.T) {
	s := NewSet()
	s.Add("")
	if !s.IsEmpty() {
		t.Error("adding an empty id should be ignored")
	}
}

func TestRemove(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("b")
	s.Add("c")

	s.Remove("c")
	if s.Primary() != "b" {
		t.Errorf("Primary = %q, want the most recent survivor b", s.Primary())
	}

	s.Remove("a")
	if got := s.IDs(); len(got) != 1 || got[0] != "b" {
		t.Errorf("IDs = %v, want [b]", got)
	}
	if s.Primary() != "b" {
		t.Errorf("Primary = %q, want b; removing a non-primary keeps it", s.Primary())
	}

	s.Remove("b")
	if !s.IsEmpty() || s.Primary() != "" {
		t.Error("removing the last id should clear the primary")
	}
}

func TestRemoveAbsent(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Remove("missing")
	if s.Count() != 1 || s.Primary() != "a" {
		t.Error("removing an absent id should change nothing")
	}
}

func TestToggle(t *testing.T) {
	s := NewSet()
	s.Toggle("a")
	if !s.Contains("a") {
		t.Error("toggle should select an unselected id")
	}
	s.Toggle("a")
	if s.Contains("a") {
		t.Error("toggle should deselect a selected id")
	}
}

func TestReplace(t *testing.T) {
	s := NewSet()
	s.Add("old")

	s.Replace("a", "b", "a", "c")
	if got := s.IDs(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("IDs = %v, want [a b c]", got)
	}
	if s.Primary() != "c" {
		t.Errorf("Primary = %q, want c", s.Primary())
	}

	s.Replace()
	if !s.IsEmpty() || s.Primary() != "" {
		t.Error("Replace with no ids should clear the selection")
	}
}

func TestIDsCopy(t *testing.T) {
	s := NewSet()
	s.Add("a")
	ids := s.IDs()
	ids[0] = "mutated"
	if got := s.IDs(); got[0] != "a" {
		t.Error("IDs must return a copy")
	}
}

func TestReconcile(t *testing.T) {
	a := element.New("a", track.RoleClip, 0, 10, 0, "")
	b := element.New("b", track.RoleOverlay, 0, 10, 1, "")
	c := element.New("c", track.RoleOverlay, 20, 30, 1, "")
	elements := []*element.Element{a, b, c}
	tracks := []*track.Track{track.New(track.RoleClip), track.New(track.RoleOverlay)}

	t.Run("keeps valid ids untouched", func(t *testing.T) {
		s := NewSet()
		s.Add(a.ID)
		s.Add(b.ID)
		if s.Reconcile(elements, tracks) {
			t.Error("nothing should change for a valid selection")
		}
		if s.Count() != 2 || s.Primary() != b.ID {
			t.Error("selection should be untouched")
		}
	})

	t.Run("drops deleted elements", func(t *testing.T) {
		s := NewSet()
		s.Add(a.ID)
		s.Add("deleted")
		if !s.Reconcile(elements, tracks) {
			t.Error("dropping a stale id should report a change")
		}
		if s.Count() != 1 || s.Primary() != a.ID {
			t.Errorf("selection = %v primary=%q, want [a] with primary a", s.IDs(), s.Primary())
		}
	})

	t.Run("drops elements on locked tracks", func(t *testing.T) {
		locked := track.WithFlag(tracks, 1, track.FlagLocked, true)
		s := NewSet()
		s.Add(b.ID)
		s.Add(a.ID)
		s.Add(c.ID)

		if !s.Reconcile(elements, locked) {
			t.Error("locking should change the selection")
		}
		if s.Count() != 1 || s.IDs()[0] != a.ID {
			t.Errorf("selection = %v, want only a", s.IDs())
		}
		// c was primary and got dropped; a is the surviving fallback.
		if s.Primary() != a.ID {
			t.Errorf("Primary = %q, want a", s.Primary())
		}
	})

	t.Run("sole selected element on a locked track clears everything", func(t *testing.T) {
		locked := track.WithFlag(tracks, 1, track.FlagLocked, true)
		s := NewSet()
		s.Add(b.ID)

		if !s.Reconcile(elements, locked) {
			t.Error("the change should be reported")
		}
		if !s.IsEmpty() {
			t.Errorf("selection = %v, want empty", s.IDs())
		}
		if s.Primary() != "" {
			t.Errorf("Primary = %q, want empty", s.Primary())
		}
	})

	t.Run("primary survives when still valid", func(t *testing.T) {
		s := NewSet()
		s.Add(c.ID)
		s.Add(a.ID)
		s.Add(b.ID)
		s.Remove(b.ID) // primary falls back to a
		if s.Primary() != a.ID {
			t.Fatalf("setup: primary = %q, want a", s.Primary())
		}

		// c disappears; a stays primary even though c was added earlier.
		remaining := []*element.Element{a, b}
		if !s.Reconcile(remaining, tracks) {
			t.Error("dropping c should report a change")
		}
		if s.Primary() != a.ID {
			t.Errorf("Primary = %q, want a to survive", s.Primary())
		}
	})
}
