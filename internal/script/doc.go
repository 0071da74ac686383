// Package script runs Lua automation against an editor.
//
// Scripts drive the same commit operations the interactive surface
// uses, so everything they do is undoable and conflict-resolved. The
// API is a single global table:
//
//	local id = timeline.insert("intro", "clip", 0, 120)
//	timeline.insert("lower third", "overlay", 10, 90, 1)
//	timeline.magnet(true)
//	timeline.move(id, 30, 150)
//	timeline.undo()
//
// Element tables returned by timeline.elements() carry id, name, role,
// start, finish, lane, and track fields. Frame intervals are half-open:
// finish is the first frame after the element.
package script
