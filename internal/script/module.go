package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/track"
)

// registerTimelineModule installs the global timeline table. Element
// tables use "finish" for the exclusive end frame because "end" is a
// Lua keyword.
func (r *Runner) registerTimelineModule() {
	funcs := map[string]lua.LGFunction{
		"insert":           r.luaInsert,
		"move":             r.luaMove,
		"move_attached":    r.luaMoveAttached,
		"retrack":          r.luaRetrack,
		"split":            r.luaSplit,
		"remove":           r.luaRemove,
		"select":           r.luaSelect,
		"toggle_select":    r.luaToggleSelect,
		"clear_selection":  r.luaClearSelection,
		"selection":        r.luaSelection,
		"primary":          r.luaPrimary,
		"undo":             r.luaUndo,
		"redo":             r.luaRedo,
		"magnet":           r.luaMagnet,
		"lock_track":       r.luaLockTrack,
		"set_track_flag":   r.luaSetTrackFlag,
		"reconcile_tracks": r.luaReconcileTracks,
		"elements":         r.luaElements,
		"tracks":           r.luaTracks,
		"playhead":         r.luaPlayhead,
		"set_playhead":     r.luaSetPlayhead,
		"play":             r.luaPlay,
		"pause":            r.luaPause,
		"playing":          r.luaPlaying,
	}
	mod := r.L.SetFuncs(r.L.NewTable(), funcs)
	r.L.SetGlobal("timeline", mod)
}

// checkTarget reads the optional lane and gap arguments shared by the
// placement functions: lane at index n (default 0), gap flag at n+1.
func checkTarget(L *lua.LState, n int) placement.DropTarget {
	lane := L.OptInt(n, 0)
	if L.ToBool(n + 1) {
		return placement.InGap(lane)
	}
	return placement.OnTrack(lane)
}

// insert(name, role, start, finish [, lane [, gap]]) -> id | nil
func (r *Runner) luaInsert(L *lua.LState) int {
	name := L.CheckString(1)
	roleName := L.CheckString(2)
	start := element.Frame(L.CheckInt64(3))
	finish := element.Frame(L.CheckInt64(4))

	role, ok := track.ParseRole(roleName)
	if !ok {
		L.ArgError(2, "unknown role "+roleName)
		return 0
	}
	id := r.ed.InsertElement(name, role, start, finish, checkTarget(L, 5))
	if id == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(id))
	return 1
}

// move(id, start, finish [, lane [, gap]]) -> changed
func (r *Runner) luaMove(L *lua.LState) int {
	id := element.ID(L.CheckString(1))
	start := element.Frame(L.CheckInt64(2))
	finish := element.Frame(L.CheckInt64(3))
	L.Push(lua.LBool(r.ed.UpdateElementTimeAndTrack(id, start, finish, checkTarget(L, 4))))
	return 1
}

// move_attached(id, start, finish [, lane [, gap]]) -> changed
func (r *Runner) luaMoveAttached(L *lua.LState) int {
	id := element.ID(L.CheckString(1))
	start := element.Frame(L.CheckInt64(2))
	finish := element.Frame(L.CheckInt64(3))
	L.Push(lua.LBool(r.ed.MoveWithAttachments(id, start, finish, checkTarget(L, 4))))
	return 1
}

// retrack(id, lane) -> changed
func (r *Runner) luaRetrack(L *lua.LState) int {
	id := element.ID(L.CheckString(1))
	lane := L.CheckInt(2)
	L.Push(lua.LBool(r.ed.UpdateElementTrack(id, lane)))
	return 1
}

// split(id, at) -> right id | nil
func (r *Runner) luaSplit(L *lua.LState) int {
	id := element.ID(L.CheckString(1))
	at := element.Frame(L.CheckInt64(2))
	rightID, ok := r.ed.SplitElement(id, at)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(rightID))
	return 1
}

// remove(id, ...) -> changed
func (r *Runner) luaRemove(L *lua.LState) int {
	n := L.GetTop()
	ids := make([]element.ID, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, element.ID(L.CheckString(i)))
	}
	L.Push(lua.LBool(r.ed.RemoveElements(ids...)))
	return 1
}

// select(id) -> changed
func (r *Runner) luaSelect(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Select(element.ID(L.CheckString(1)))))
	return 1
}

// toggle_select(id) -> changed
func (r *Runner) luaToggleSelect(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.ToggleSelection(element.ID(L.CheckString(1)))))
	return 1
}

// clear_selection() -> changed
func (r *Runner) luaClearSelection(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.ClearSelection()))
	return 1
}

// selection() -> array of ids
func (r *Runner) luaSelection(L *lua.LState) int {
	arr := L.NewTable()
	for i, id := range r.ed.SelectedIDs() {
		arr.RawSetInt(i+1, lua.LString(id))
	}
	L.Push(arr)
	return 1
}

// primary() -> id | nil
func (r *Runner) luaPrimary(L *lua.LState) int {
	id := r.ed.PrimarySelection()
	if id == "" {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LString(id))
	}
	return 1
}

// undo() -> ok
func (r *Runner) luaUndo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Undo() == nil))
	return 1
}

// redo() -> ok
func (r *Runner) luaRedo(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.Redo() == nil))
	return 1
}

// magnet(enabled) sets the magnet; magnet() reads it.
func (r *Runner) luaMagnet(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LBool(r.ed.MagnetEnabled()))
		return 1
	}
	L.Push(lua.LBool(r.ed.SetMainTrackMagnet(L.CheckBool(1))))
	return 1
}

// lock_track(lane, locked) -> changed
func (r *Runner) luaLockTrack(L *lua.LState) int {
	lane := L.CheckInt(1)
	locked := L.CheckBool(2)
	L.Push(lua.LBool(r.ed.SetTrackFlag(lane, track.FlagLocked, locked)))
	return 1
}

// set_track_flag(lane, flag, value) -> changed
func (r *Runner) luaSetTrackFlag(L *lua.LState) int {
	lane := L.CheckInt(1)
	flagName := L.CheckString(2)
	value := L.CheckBool(3)

	flag, ok := track.ParseFlag(flagName)
	if !ok {
		L.ArgError(2, "unknown flag "+flagName)
		return 0
	}
	L.Push(lua.LBool(r.ed.SetTrackFlag(lane, flag, value)))
	return 1
}

// reconcile_tracks() -> changed
func (r *Runner) luaReconcileTracks(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.ReconcileTracks()))
	return 1
}

// elements() -> array of element tables
func (r *Runner) luaElements(L *lua.LState) int {
	arr := L.NewTable()
	for i, e := range r.ed.Elements() {
		t := L.NewTable()
		t.RawSetString("id", lua.LString(e.ID))
		t.RawSetString("name", lua.LString(e.Name))
		t.RawSetString("role", lua.LString(e.Role.String()))
		t.RawSetString("start", lua.LNumber(e.Start))
		t.RawSetString("finish", lua.LNumber(e.End))
		t.RawSetString("lane", lua.LNumber(e.TrackIndex))
		t.RawSetString("track", lua.LString(e.TrackID))
		if e.AnchorID != "" {
			t.RawSetString("anchor", lua.LString(e.AnchorID))
		}
		arr.RawSetInt(i+1, t)
	}
	L.Push(arr)
	return 1
}

// tracks() -> array of track tables
func (r *Runner) luaTracks(L *lua.LState) int {
	arr := L.NewTable()
	for i, tr := range r.ed.Tracks() {
		t := L.NewTable()
		t.RawSetString("id", lua.LString(tr.ID))
		t.RawSetString("kind", lua.LString(tr.Kind.String()))
		t.RawSetString("hidden", lua.LBool(tr.Hidden))
		t.RawSetString("locked", lua.LBool(tr.Locked))
		t.RawSetString("muted", lua.LBool(tr.Muted))
		t.RawSetString("solo", lua.LBool(tr.Solo))
		arr.RawSetInt(i+1, t)
	}
	L.Push(arr)
	return 1
}

// playhead() -> frame
func (r *Runner) luaPlayhead(L *lua.LState) int {
	L.Push(lua.LNumber(r.ed.CurrentFrame()))
	return 1
}

// set_playhead(frame)
func (r *Runner) luaSetPlayhead(L *lua.LState) int {
	r.ed.SetCurrentFrame(element.Frame(L.CheckInt64(1)))
	return 0
}

// play()
func (r *Runner) luaPlay(L *lua.LState) int {
	r.ed.Play()
	return 0
}

// pause()
func (r *Runner) luaPause(L *lua.LState) int {
	r.ed.Pause()
	return 0
}

// playing() -> bool
func (r *Runner) luaPlaying(L *lua.LState) int {
	L.Push(lua.LBool(r.ed.IsPlaying()))
	return 1
}
