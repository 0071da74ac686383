package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/reelsmith/timeline/internal/editor"
)

// ErrRunnerClosed is returned when a closed runner is used.
var ErrRunnerClosed = errors.New("script runner closed")

// Runner executes Lua scripts against one editor. Scripts see a global
// timeline module whose functions map onto the editor's operations.
//
// The runner shares the editor's threading model: confine it to the
// editor's goroutine. Scripts run synchronously to completion.
type Runner struct {
	ed     *editor.Editor
	L      *lua.LState
	closed bool
}

// NewRunner creates a runner bound to the editor. Only the base, table,
// string, and math libraries are opened; scripts get no file system or
// process access.
func NewRunner(ed *editor.Editor) *Runner {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	r := &Runner{ed: ed, L: L}
	r.registerTimelineModule()
	return r
}

// Run executes the Lua file at path.
func (r *Runner) Run(path string) error {
	if r.closed {
		return ErrRunnerClosed
	}
	if err := r.protect(func() error { return r.L.DoFile(path) }); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes Lua source directly.
func (r *Runner) RunString(code string) error {
	if r.closed {
		return ErrRunnerClosed
	}
	if err := r.protect(func() error { return r.L.DoString(code) }); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// protect runs fn with panic recovery so a misbehaving script cannot
// take down the process.
func (r *Runner) protect(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// Close releases the Lua state. Further calls return ErrRunnerClosed.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.L.Close()
	r.closed = true
}
