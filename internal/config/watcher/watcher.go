// Package watcher delivers change notifications for one configuration
// file, coalescing editor write bursts into single events.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of file operations observed during one event window.
type Op uint8

const (
	// OpWrite indicates the file was modified.
	OpWrite Op = 1 << iota
	// OpCreate indicates the file was created.
	OpCreate
	// OpRemove indicates the file was deleted.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
	// OpChmod indicates the file permissions changed.
	OpChmod
)

// Has reports whether the mask contains the given operation.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// String returns the operation names joined with "|".
func (op Op) String() string {
	names := []struct {
		op   Op
		name string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{OpChmod, "chmod"},
	}
	s := ""
	for _, n := range names {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Event describes a change to the watched file. Op carries every
// operation seen within the debounce window, so an atomic save shows
// up as a single remove|create|write event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the set of operations observed.
	Op Op

	// Time is when the last operation was observed.
	Time time.Time
}

// DefaultDebounce is the window for coalescing rapid changes.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the coalescing window. Zero disables debouncing.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// Watcher watches a single file through its parent directory, which
// keeps notifications working across the rename-and-replace saves most
// editors perform.
type Watcher struct {
	fsw *fsnotify.Watcher

	// path is the absolute path of the watched file.
	path string

	// debounce is the coalescing window for event bursts.
	debounce time.Duration

	events chan Event
	errors chan error

	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher for the file at path and starts delivering
// events. The caller must Close it when done.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: DefaultDebounce,
		events:   make(chan Event, 16),
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		w.wg.Wait()
		close(w.events)
		close(w.errors)
		err = w.fsw.Close()
	})
	return err
}

// loop converts raw fsnotify events for the watched file into
// debounced Events.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		pending Op
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			pending |= op
			if w.debounce <= 0 {
				w.emit(pending)
				pending = 0
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			w.emit(pending)
			pending = 0
			fire = nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// emit sends an event, dropping it if the channel is full.
func (w *Watcher) emit(op Op) {
	if op == 0 {
		return
	}
	select {
	case w.events <- Event{Path: w.path, Op: op, Time: time.Now()}:
	default:
	}
}

// sendError sends an error, dropping it if the channel is full.
func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// convertOp maps fsnotify operations onto the local bitmask.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
