// Package placement decides where elements land on the track stack.
//
// Three concerns live here. The resolver turns a drop intent (an
// existing lane, or the seam between two lanes) into a final track
// index, inserting a new track when nothing nearby is free. The
// attachment relation derives which elements are stacked onto another
// and must travel with it; it is recomputed from current positions on
// every use and never stored. The magnet reflow closes gaps on the main
// track after edits, dragging attached elements along.
//
// Every function is pure: inputs are read, never mutated, and changed
// results come back as new slices. Conflict checks consult only each
// element's stored track index, so individual resolution steps cannot
// observe one another and their order cannot change the outcome.
package placement
