package placement

import "fmt"

// Kind distinguishes the two drop intents a gesture can express.
type Kind uint8

const (
	// DropOnTrack drops onto an existing lane.
	DropOnTrack Kind = iota
	// DropInGap drops into the seam between two lanes.
	DropInGap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case DropOnTrack:
		return "track"
	case DropInGap:
		return "gap"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DropTarget is the destination implied by a drag release: either an
// existing track, or the gap between two tracks. For gaps, TrackIndex g
// names the seam below lane g; inserting there creates a new track at
// index g.
type DropTarget struct {
	Kind       Kind
	TrackIndex int
}

// OnTrack returns a drop target for an existing lane.
func OnTrack(index int) DropTarget {
	return DropTarget{Kind: DropOnTrack, TrackIndex: index}
}

// InGap returns a drop target for the seam below lane index.
func InGap(index int) DropTarget {
	return DropTarget{Kind: DropInGap, TrackIndex: index}
}

// String returns a compact description for logs and debugging.
func (d DropTarget) String() string {
	return fmt.Sprintf("%s:%d", d.Kind, d.TrackIndex)
}
