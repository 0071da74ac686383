package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/reelsmith/timeline/internal/editor"
	"github.com/reelsmith/timeline/internal/engine/drag"
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/track"
)

const (
	// gutterWidth is the left column reserved for track labels.
	gutterWidth = 8

	// DefaultScale is the starting zoom in frames per screen cell.
	DefaultScale = 4

	minScale = 1
	maxScale = 256
)

// Viewer draws the timeline onto a tcell screen: a frame ruler on top,
// one row per track with the main track at the bottom, the playhead,
// the drag ghost, and a status line. It reads engine state and never
// mutates it; all editing flows through the event loop.
type Viewer struct {
	screen tcell.Screen
	ed     *editor.Editor
	drag   *drag.Session

	// scale is the zoom in frames per cell.
	scale element.Frame

	// origin is the leftmost visible frame.
	origin element.Frame
}

// NewViewer creates a viewer drawing ed onto screen. The drag session
// supplies the ghost overlay and may be nil.
func NewViewer(ed *editor.Editor, screen tcell.Screen, drag *drag.Session) *Viewer {
	return &Viewer{screen: screen, ed: ed, drag: drag, scale: DefaultScale}
}

// Step returns the frame distance covered by one screen cell. Key
// bindings nudge by it so movements stay visible at any zoom.
func (v *Viewer) Step() element.Frame {
	return v.scale
}

// ZoomIn halves the frames per cell, down to one frame per cell.
func (v *Viewer) ZoomIn() {
	if v.scale > minScale {
		v.scale /= 2
	}
}

// ZoomOut doubles the frames per cell.
func (v *Viewer) ZoomOut() {
	if v.scale < maxScale {
		v.scale *= 2
	}
}

// Render draws one full frame and flushes it to the terminal.
func (v *Viewer) Render() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width <= gutterWidth+1 || height < 3 {
		v.screen.Show()
		return
	}
	v.ensureVisible(v.ed.CurrentFrame(), width)
	v.drawRuler(width)
	v.drawTracks(width, height)
	v.drawGhost(width, height)
	v.drawPlayhead(width, height)
	v.drawStatus(width, height)
	v.screen.Show()
}

// frameToX maps a frame to a screen column. Columns left of the gutter
// or past the right edge mean the frame is off screen.
func (v *Viewer) frameToX(f element.Frame) int {
	return gutterWidth + int((f-v.origin)/v.scale)
}

// ensureVisible scrolls the viewport horizontally until f is on screen.
func (v *Viewer) ensureVisible(f element.Frame, width int) {
	span := element.Frame(width-gutterWidth) * v.scale
	if span <= 0 {
		return
	}
	if f < v.origin {
		v.origin = f
	}
	if f >= v.origin+span {
		v.origin = f - span + v.scale
	}
	if v.origin < 0 {
		v.origin = 0
	}
}

func (v *Viewer) drawRuler(width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := gutterWidth; x < width; x += 10 {
		frame := v.origin + element.Frame(x-gutterWidth)*v.scale
		v.drawText(x, 0, width, style, fmt.Sprintf("%d", frame))
	}
}

func (v *Viewer) drawTracks(width, height int) {
	bottom := height - 2
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)

	tracks := v.ed.Tracks()
	hidden := make([]bool, len(tracks))
	for i, tr := range tracks {
		hidden[i] = tr.Hidden
		row := bottom - i
		if row < 1 {
			continue
		}
		v.drawText(0, row, gutterWidth, labelStyle, trackLabel(i, tr))
	}

	selected := make(map[element.ID]bool)
	for _, id := range v.ed.SelectedIDs() {
		selected[id] = true
	}
	primary := v.ed.PrimarySelection()

	for _, el := range v.ed.Elements() {
		if el.TrackIndex < len(hidden) && hidden[el.TrackIndex] {
			continue
		}
		row := bottom - el.TrackIndex
		if row < 1 {
			continue
		}
		v.drawSpan(el, row, width, selected[el.ID], el.ID == primary)
	}
}

func (v *Viewer) drawSpan(el *element.Element, row, width int, selected, primary bool) {
	x0, x1, ok := v.spanCells(el.Start, el.End, width)
	if !ok {
		return
	}
	style := roleStyle(el.Role)
	if selected {
		style = style.Reverse(true)
	}
	if primary {
		style = style.Bold(true)
	}
	for x := x0; x < x1; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}
	label := el.Name
	if el.AnchorID != "" {
		label = "@" + label
	}
	v.drawText(x0, row, x1, style, label)
}

func (v *Viewer) drawGhost(width, height int) {
	if v.drag == nil {
		return
	}
	ghost, ok := v.drag.Ghost()
	if !ok {
		return
	}
	row := height - 2 - ghost.Lane
	if row < 1 {
		return
	}
	x0, x1, ok := v.spanCells(ghost.Start, ghost.End, width)
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Dim(true)
	if ghost.Gap {
		style = style.Underline(true)
	}
	for x := x0; x < x1; x++ {
		v.screen.SetContent(x, row, '░', nil, style)
	}
}

func (v *Viewer) drawPlayhead(width, height int) {
	x := v.frameToX(v.ed.CurrentFrame())
	if x < gutterWidth || x >= width {
		return
	}
	for y := 0; y < height-1; y++ {
		mainc, _, style, _ := v.screen.GetContent(x, y)
		if mainc == ' ' || mainc == 0 {
			v.screen.SetContent(x, y, '|', nil, style.Foreground(tcell.ColorRed))
		}
	}
}

func (v *Viewer) drawStatus(width, height int) {
	row := height - 1
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}

	state := "paused"
	if v.ed.IsPlaying() {
		state = "playing"
	}
	magnet := "off"
	if v.ed.MagnetEnabled() {
		magnet = "on"
	}
	line := fmt.Sprintf(" %s  frame %d  fps %g  magnet %s  sel %d",
		state, v.ed.CurrentFrame(), v.ed.FPS(), magnet, v.ed.SelectionCount())
	if v.drag != nil && v.drag.Active() {
		line += "  dragging"
	}
	if info, ok := v.ed.NextUndo(); ok {
		line += "  undo: " + info.Label
	}
	v.drawText(0, row, width, style, line)
}

// spanCells clips the half-open frame interval [start, end) to visible
// columns. ok is false when the span is entirely off screen.
func (v *Viewer) spanCells(start, end element.Frame, width int) (int, int, bool) {
	x0 := v.frameToX(start)
	x1 := v.frameToX(end)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if x1 <= gutterWidth || x0 >= width {
		return 0, 0, false
	}
	if x0 < gutterWidth {
		x0 = gutterWidth
	}
	if x1 > width {
		x1 = width
	}
	return x0, x1, true
}

// drawText writes s starting at (x, y), clipped at column maxX.
func (v *Viewer) drawText(x, y, maxX int, style tcell.Style, s string) {
	for _, r := range s {
		if x >= maxX {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func trackLabel(index int, tr *track.Track) string {
	name := "main"
	if index > 0 {
		name = fmt.Sprintf("t%d", index)
	}
	marks := ""
	if tr.Locked {
		marks += "L"
	}
	if tr.Hidden {
		marks += "H"
	}
	if tr.Muted {
		marks += "M"
	}
	if tr.Solo {
		marks += "S"
	}
	if marks == "" {
		return name
	}
	return fmt.Sprintf("%-4s %s", name, marks)
}

func roleStyle(r track.Role) tcell.Style {
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack)
	switch r {
	case track.RoleClip:
		return base.Background(tcell.ColorSteelBlue)
	case track.RoleOverlay:
		return base.Background(tcell.ColorDarkOrchid)
	case track.RoleEffect:
		return base.Background(tcell.ColorDarkSeaGreen)
	case track.RoleTransition:
		return base.Background(tcell.ColorGoldenrod)
	default:
		return base.Background(tcell.ColorGray)
	}
}
