package app

import (
	"errors"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/reelsmith/timeline/internal/config"
	"github.com/reelsmith/timeline/internal/config/watcher"
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/playback"
	"github.com/reelsmith/timeline/internal/engine/track"
	"github.com/reelsmith/timeline/internal/event"
)

// eventBuffer sizes the input channel. PollEvent blocks, so the poll
// goroutine stays ahead of the loop with room to spare.
const eventBuffer = 64

// eventLoop drives the terminal session: input events, playback ticks,
// and config reloads, redrawing after every state change.
func (app *Application) eventLoop() error {
	events := app.startEventPolling()

	ticker := time.NewTicker(tickInterval(app.ed.FPS()))
	defer ticker.Stop()
	last := time.Now()

	var wevents <-chan watcher.Event
	var werrors <-chan error
	if app.watcher != nil {
		wevents = app.watcher.Events()
		werrors = app.watcher.Errors()
	}

	app.viewer.Render()

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleScreenEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			app.viewer.Render()

		case now := <-ticker.C:
			app.ed.Tick(now.Sub(last))
			last = now
			if app.ed.IsPlaying() {
				app.viewer.Render()
			}

		case wev, ok := <-wevents:
			if !ok {
				wevents = nil
				continue
			}
			app.log.WithComponent("config").Debug("file event: %s", wev.Op)
			app.reloadConfig()
			ticker.Reset(tickInterval(app.ed.FPS()))
			app.viewer.Render()

		case err, ok := <-werrors:
			if !ok {
				werrors = nil
				continue
			}
			app.log.WithComponent("config").Warn("watch error: %v", err)
		}
	}
}

// startEventPolling reads terminal events on a goroutine. PollEvent
// returns nil once the screen is finalized, which ends the goroutine.
func (app *Application) startEventPolling() <-chan tcell.Event {
	events := make(chan tcell.Event, eventBuffer)

	go func() {
		defer close(events)
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}

// handleScreenEvent routes one terminal event. Returns ErrQuit when the
// session should end.
func (app *Application) handleScreenEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		return nil
	case *tcell.EventKey:
		return app.handleKey(e)
	default:
		return nil
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		if app.drag.Active() {
			app.drag.Cancel()
			return nil
		}
		return ErrQuit
	case tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyLeft:
		app.ed.SetCurrentFrame(app.ed.CurrentFrame() - app.viewer.Step())
		return nil
	case tcell.KeyRight:
		app.ed.SetCurrentFrame(app.ed.CurrentFrame() + app.viewer.Step())
		return nil
	case tcell.KeyTab:
		app.cycleSelection()
		return nil
	case tcell.KeyRune:
		return app.handleRune(ev.Rune())
	default:
		return nil
	}
}

func (app *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case ' ':
		app.ed.TogglePlayback()
	case 'u':
		if err := app.ed.Undo(); err != nil {
			app.log.Debug("undo: %v", err)
		}
	case 'r':
		if err := app.ed.Redo(); err != nil {
			app.log.Debug("redo: %v", err)
		}
	case 'm':
		app.ed.SetMainTrackMagnet(!app.ed.MagnetEnabled())
	case 'x':
		app.ed.RemoveElements(app.ed.SelectedIDs()...)
	case 's':
		app.splitAtPlayhead()
	case 'g':
		app.toggleDrag()
	case 'n':
		app.toggleGapHover()
	case 'h':
		app.nudge(-app.viewer.Step(), 0)
	case 'l':
		app.nudge(app.viewer.Step(), 0)
	case 'k':
		app.nudge(0, 1)
	case 'j':
		app.nudge(0, -1)
	case 'L':
		app.toggleLock()
	case '+', '=':
		app.viewer.ZoomIn()
	case '-':
		app.viewer.ZoomOut()
	case '0':
		app.ed.SetCurrentFrame(0)
	}
	return nil
}

// nudge moves the drag ghost when a drag is active, otherwise the
// primary selection. Attachments ride along on direct moves.
func (app *Application) nudge(dx element.Frame, dlane int) {
	if app.drag.Active() {
		frame, lane, _ := app.drag.Pointer()
		frame += dx
		if frame < 0 {
			frame = 0
		}
		lane += dlane
		if lane < 0 {
			lane = 0
		}
		ghost, _ := app.drag.Ghost()
		app.drag.Move(frame, lane, ghost.Gap && dlane == 0)
		return
	}

	id := app.ed.PrimarySelection()
	if id == "" {
		return
	}
	el, ok := app.ed.ElementByID(id)
	if !ok {
		return
	}
	if dlane != 0 {
		next := el.TrackIndex + dlane
		if next < 0 {
			return
		}
		app.ed.UpdateElementTrack(id, next)
		return
	}
	start := el.Start + dx
	if start < 0 {
		start = 0
	}
	app.ed.MoveWithAttachments(id, start, start+el.Duration(), placement.OnTrack(el.TrackIndex))
}

// toggleDrag grabs the primary selection, or commits an active drag as
// one move with attachments.
func (app *Application) toggleDrag() {
	if app.drag.Active() {
		id, start, end, target, ok := app.drag.Drop()
		if !ok {
			return
		}
		app.ed.MoveWithAttachments(id, start, end, target)
		return
	}

	id := app.ed.PrimarySelection()
	if id == "" {
		return
	}
	el, ok := app.ed.ElementByID(id)
	if !ok {
		return
	}
	app.drag.Begin(el, app.ed.CurrentFrame())
}

// toggleGapHover flips the active drag between hovering a track and the
// seam below it, which forces a new track on drop.
func (app *Application) toggleGapHover() {
	if !app.drag.Active() {
		return
	}
	frame, lane, _ := app.drag.Pointer()
	ghost, _ := app.drag.Ghost()
	app.drag.Move(frame, lane, !ghost.Gap)
}

func (app *Application) splitAtPlayhead() {
	id := app.ed.PrimarySelection()
	if id == "" {
		return
	}
	app.ed.SplitElement(id, app.ed.CurrentFrame())
}

// toggleLock flips the lock on the primary selection's track, falling
// back to the main track when nothing is selected.
func (app *Application) toggleLock() {
	lane := 0
	if el, ok := app.ed.ElementByID(app.ed.PrimarySelection()); ok {
		lane = el.TrackIndex
	}
	app.ed.ToggleTrackFlag(lane, track.FlagLocked)
}

// cycleSelection selects the next element in track-then-start order,
// wrapping around and skipping elements on locked tracks.
func (app *Application) cycleSelection() {
	els := app.ed.Elements()
	if len(els) == 0 {
		return
	}
	sorted := make([]*element.Element, len(els))
	copy(sorted, els)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TrackIndex != b.TrackIndex {
			return a.TrackIndex < b.TrackIndex
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.ID < b.ID
	})

	next := 0
	primary := app.ed.PrimarySelection()
	for i, el := range sorted {
		if el.ID == primary {
			next = (i + 1) % len(sorted)
			break
		}
	}
	for range sorted {
		if app.ed.Select(sorted[next].ID) {
			return
		}
		next = (next + 1) % len(sorted)
	}
}

// reloadConfig re-reads the config file and applies the tunable knobs.
// A broken file keeps the previous configuration.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.log.WithComponent("config").Warn("reload failed, keeping previous: %v", err)
		return
	}
	app.applyConfig(cfg)
	app.ed.Publish(event.ConfigChanged{Path: app.opts.ConfigPath})
	app.log.WithComponent("config").Info("reloaded %s", app.opts.ConfigPath)
}

// applyConfig installs the runtime-tunable settings. The magnet flag is
// start-up only: toggling it mid-session belongs to the user and the
// undo history.
func (app *Application) applyConfig(cfg *config.Config) {
	app.cfg = cfg
	app.ed.SetHistoryLimit(cfg.History.Limit)
	app.ed.SetTieBreak(cfg.TieBreak())
	app.ed.SetAttachmentTolerance(cfg.Tolerance())
	app.ed.SetFPS(cfg.Playback.FPS)
	if app.opts.LogLevel == "" {
		app.log.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
}

// tickInterval converts a frame rate to a ticker period, clamped so a
// misconfigured rate cannot spin the loop.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = playback.DefaultFPS
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < 10*time.Millisecond {
		d = 10 * time.Millisecond
	}
	return d
}
