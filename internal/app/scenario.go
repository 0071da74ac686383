package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reelsmith/timeline/internal/editor"
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// Scenario is a declarative timeline seed loaded at startup. Items are
// placed one by one through the normal drop pipeline, so overlapping
// declarations resolve exactly as interactive drops would.
type Scenario struct {
	// Name labels the scenario in logs.
	Name string `yaml:"name"`

	// FPS overrides the configured playback rate when positive.
	FPS float64 `yaml:"fps"`

	// Magnet turns the main-track magnet on after seeding.
	Magnet bool `yaml:"magnet"`

	// Items are placed in declaration order.
	Items []ScenarioItem `yaml:"items"`
}

// ScenarioItem describes one element to place.
type ScenarioItem struct {
	// Name is the element's display name. Required.
	Name string `yaml:"name"`

	// Role is one of clip, overlay, effect, transition. Empty means clip.
	Role string `yaml:"role"`

	// Start is the first frame of the element.
	Start int64 `yaml:"start"`

	// Length is the element's duration in frames. Required.
	Length int64 `yaml:"length"`

	// Lane is the drop track index. Zero targets the main track.
	Lane int `yaml:"lane"`

	// Gap drops onto the seam below Lane, forcing a new track.
	Gap bool `yaml:"gap"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes scenario YAML and validates every item.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %v", sc.FPS)
	}
	for i, item := range sc.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if item.Role != "" {
			if _, ok := track.ParseRole(item.Role); !ok {
				return fmt.Errorf("item %q: unknown role %q", item.Name, item.Role)
			}
		}
		if item.Length <= 0 {
			return fmt.Errorf("item %q: length must be positive, got %d", item.Name, item.Length)
		}
		if item.Start < 0 {
			return fmt.Errorf("item %q: start must not be negative, got %d", item.Name, item.Start)
		}
		if item.Lane < 0 {
			return fmt.Errorf("item %q: lane must not be negative, got %d", item.Name, item.Lane)
		}
	}
	return nil
}

// Seed places every item on the timeline in declaration order, then
// clears history so the seeded state is the floor undo cannot pass.
// Returns the number of elements placed.
func (sc *Scenario) Seed(ed *editor.Editor) int {
	if sc.FPS > 0 {
		ed.SetFPS(sc.FPS)
	}
	placed := 0
	for _, item := range sc.Items {
		role := track.RoleClip
		if item.Role != "" {
			role, _ = track.ParseRole(item.Role)
		}
		target := placement.OnTrack(item.Lane)
		if item.Gap {
			target = placement.InGap(item.Lane)
		}
		start := element.Frame(item.Start)
		end := start + element.Frame(item.Length)
		if id := ed.InsertElement(item.Name, role, start, end, target); id != "" {
			placed++
		}
	}
	if sc.Magnet {
		ed.SetMainTrackMagnet(true)
	}
	ed.ClearHistory()
	return placed
}
