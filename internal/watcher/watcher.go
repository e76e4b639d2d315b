// Package watcher notifies the dashboard when the test results file
// changes on disk. The file's parent directory is watched rather than the
// file itself so atomic rename-over writes and late creation are still
// caught; when inotify is unavailable the watcher degrades to mtime
// polling.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the stat cadence used in polling mode.
const DefaultPollInterval = time.Second

// fileStamp captures one stat of the results file for poll-based change
// detection. The zero value means the file does not exist.
type fileStamp struct {
	exists  bool
	modTime time.Time
	size    int64
}

// Watcher watches a single file and coalesces change bursts into single
// signals on the Changes channel.
type Watcher struct {
	path string
	base string

	debounce  *Debouncer
	changes   chan struct{}
	fs        *fsnotify.Watcher
	pollEvery time.Duration
	forcePoll bool
	closeCh   chan struct{}
	closeOnce sync.Once
	log       *slog.Logger

	mu     sync.Mutex
	last   fileStamp
	closed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the window used to coalesce change bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = NewDebouncer(d)
		}
	}
}

// WithPollInterval sets the stat cadence used in polling mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollEvery = d
		}
	}
}

// WithPolling forces polling mode instead of inotify.
func WithPolling(force bool) Option {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// Watch starts watching path. inotify needs the parent directory to exist;
// when it does not, or inotify itself is unavailable, the watcher falls
// back to polling and keeps working, catching the file whenever it appears.
func Watch(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:      abs,
		base:      filepath.Base(abs),
		debounce:  NewDebouncer(0),
		changes:   make(chan struct{}, 1),
		pollEvery: DefaultPollInterval,
		closeCh:   make(chan struct{}),
		log:       slog.With("component", "watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.last = stamp(abs)

	if !w.forcePoll {
		fs, err := fsnotify.NewWatcher()
		if err != nil {
			w.log.Debug("inotify unavailable, polling results file", "path", abs, "error", err)
		} else if addErr := fs.Add(filepath.Dir(abs)); addErr != nil {
			fs.Close()
			w.log.Debug("results directory not watchable, polling instead", "dir", filepath.Dir(abs), "error", addErr)
		} else {
			w.fs = fs
			go w.run()
			return w, nil
		}
	}

	go w.runPoll()
	return w, nil
}

// Changes delivers one signal per debounced burst. The channel holds at
// most one pending signal; further bursts collapse into it until the
// reader catches up. It is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes the Changes channel. Safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.debounce.Cancel()
		w.mu.Lock()
		w.closed = true
		close(w.changes)
		w.mu.Unlock()
		close(w.closeCh)
		if w.fs != nil {
			err = w.fs.Close()
		}
	})
	return err
}

// run consumes inotify events for the watched directory, keeping only
// those that name our file. Chmod is noise; everything else means the
// contents may differ.
func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.base {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.debounce.Trigger(w.notify)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("results watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) runPoll() {
	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.pollOnce()
		case <-w.closeCh:
			return
		}
	}
}

// pollOnce compares the current stat against the previous one. Appearance,
// disappearance, and any mtime or size movement all count as changes.
func (w *Watcher) pollOnce() {
	cur := stamp(w.path)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	changed := cur != w.last
	w.last = cur
	w.mu.Unlock()

	if changed {
		w.debounce.Trigger(w.notify)
	}
}

// notify runs on the debounce timer goroutine. The send is non-blocking so
// a busy reader sees at most one queued signal.
func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func stamp(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, modTime: info.ModTime(), size: info.Size()}
}
