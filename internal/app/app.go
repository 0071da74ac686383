package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/reelsmith/timeline/internal/config"
	"github.com/reelsmith/timeline/internal/config/watcher"
	"github.com/reelsmith/timeline/internal/editor"
	"github.com/reelsmith/timeline/internal/engine/drag"
	"github.com/reelsmith/timeline/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML config file. Empty skips file loading and
	// the reload watcher; defaults and environment overrides still apply.
	ConfigPath string

	// ScenarioPath is a YAML scenario seeded onto the timeline at
	// startup.
	ScenarioPath string

	// ScriptPath is a Lua script run before the UI starts.
	ScriptPath string

	// Headless runs the script and exits without starting the terminal
	// UI.
	Headless bool

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogOutput overrides the log destination. Defaults to stderr.
	LogOutput io.Writer
}

// Application owns the component graph and its lifecycle. New wires
// components in dependency order, Run drives the terminal session until
// quit, and Shutdown releases everything.
type Application struct {
	opts Options
	log  *Logger
	cfg  *config.Config

	ed      *editor.Editor
	drag    *drag.Session
	runner  *script.Runner
	watcher *watcher.Watcher
	screen  tcell.Screen
	viewer  *Viewer

	running  atomic.Bool
	done     chan struct{}
	shutdown sync.Once
}

// New creates the application and initializes every component. A nil
// error means the application is ready to Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order: logger, config,
// editor, scenario seed, script runner, config watcher, screen. The
// watcher is optional and degrades to a warning; everything else is
// required.
func (app *Application) bootstrap() error {
	app.log = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.opts.LogLevel),
		Output: app.opts.LogOutput,
		Prefix: "reelsmith",
	})

	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg
	if app.opts.LogLevel == "" {
		app.log.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}

	app.ed = editor.New(
		editor.WithHistoryLimit(cfg.History.Limit),
		editor.WithMagnet(cfg.Magnet.Enabled),
		editor.WithTieBreak(cfg.TieBreak()),
		editor.WithAttachmentTolerance(cfg.Tolerance()),
		editor.WithFPS(cfg.Playback.FPS),
	)
	app.drag = drag.NewSession()

	if app.opts.ScenarioPath != "" {
		sc, err := LoadScenario(app.opts.ScenarioPath)
		if err != nil {
			return &InitError{Component: "scenario", Err: err}
		}
		placed := sc.Seed(app.ed)
		app.log.WithComponent("scenario").Info("seeded %d of %d items from %s",
			placed, len(sc.Items), app.opts.ScenarioPath)
	}

	app.runner = script.NewRunner(app.ed)

	if app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath)
		if err != nil {
			app.log.WithComponent("config").Warn("reload disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	if !app.opts.Headless {
		screen, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screen = screen
		app.viewer = NewViewer(app.ed, screen, app.drag)
	}

	return nil
}

// Run executes the startup script, then drives the terminal session
// until the user quits. Headless runs exit after the script. A script
// failure is fatal headless and logged otherwise.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.opts.ScriptPath != "" {
		if err := app.runner.Run(app.opts.ScriptPath); err != nil {
			if app.opts.Headless {
				return err
			}
			app.log.WithComponent("script").Error("startup script: %v", err)
		}
	}

	if app.opts.Headless {
		return nil
	}

	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Fini()
	app.screen.HideCursor()

	app.log.Info("ui started")
	return app.eventLoop()
}

// Shutdown stops the event loop and releases components in reverse
// initialization order. Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		close(app.done)
		if app.watcher != nil {
			_ = app.watcher.Close()
		}
		if app.runner != nil {
			app.runner.Close()
		}
	})
}

// Editor returns the editing engine.
func (app *Application) Editor() *editor.Editor {
	return app.ed
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.log
}
