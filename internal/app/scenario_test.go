package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reelsmith/timeline/internal/editor"
	"github.com/reelsmith/timeline/internal/engine/track"
)

const sampleScenario = `
name: rough cut
fps: 24
magnet: true
items:
  - name: intro
    role: clip
    start: 0
    length: 120
  - name: interview
    role: clip
    start: 120
    length: 240
  - name: title
    role: overlay
    start: 10
    length: 60
    lane: 1
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if sc.Name != "rough cut" {
		t.Errorf("Name = %q", sc.Name)
	}
	if sc.FPS != 24 {
		t.Errorf("FPS = %v, want 24", sc.FPS)
	}
	if !sc.Magnet {
		t.Error("Magnet should be true")
	}
	if len(sc.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(sc.Items))
	}
	title := sc.Items[2]
	if title.Role != "overlay" || title.Lane != 1 || title.Length != 60 {
		t.Errorf("unexpected item %+v", title)
	}
}

func TestParseScenarioDefaultsRoleToClip(t *testing.T) {
	sc, err := ParseScenario([]byte("items:\n  - name: a\n    length: 10\n"))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	ed := editor.New()
	if sc.Seed(ed) != 1 {
		t.Fatal("item should be placed")
	}
	if got := ed.Elements()[0].Role; got != track.RoleClip {
		t.Errorf("role = %v, want clip", got)
	}
}

func TestParseScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing name", "items:\n  - role: clip\n    length: 10\n", "name is required"},
		{"unknown role", "items:\n  - name: a\n    role: speaker\n    length: 10\n", "unknown role"},
		{"zero length", "items:\n  - name: a\n    length: 0\n", "length"},
		{"negative start", "items:\n  - name: a\n    length: 10\n    start: -4\n", "start"},
		{"negative lane", "items:\n  - name: a\n    length: 10\n    lane: -1\n", "lane"},
		{"negative fps", "fps: -24\nitems: []\n", "fps"},
		{"broken yaml", "items: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.yaml")
	if err := os.WriteFile(path, []byte(sampleScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if len(sc.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(sc.Items))
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSeedPlacesAndClearsHistory(t *testing.T) {
	sc, err := ParseScenario([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	ed := editor.New()

	if got := sc.Seed(ed); got != 3 {
		t.Fatalf("Seed placed %d, want 3", got)
	}
	if len(ed.Elements()) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(ed.Elements()))
	}
	if ed.CanUndo() {
		t.Error("seeding must not leave history entries")
	}
	if !ed.MagnetEnabled() {
		t.Error("magnet should be on after seeding")
	}
	if ed.FPS() != 24 {
		t.Errorf("fps = %v, want 24", ed.FPS())
	}
}

func TestSeedResolvesConflicts(t *testing.T) {
	src := `
items:
  - name: a
    length: 100
  - name: b
    start: 50
    length: 100
`
	sc, err := ParseScenario([]byte(src))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	ed := editor.New()
	if got := sc.Seed(ed); got != 2 {
		t.Fatalf("Seed placed %d, want 2", got)
	}
	for _, el := range ed.Elements() {
		for _, other := range ed.Elements() {
			if el.ID != other.ID && el.TrackIndex == other.TrackIndex &&
				el.Start < other.End && other.Start < el.End {
				t.Fatalf("overlap between %s and %s", el.Name, other.Name)
			}
		}
	}
}
