package refresh

import (
	"sync"
	"time"
)

// FlashDuration is how long the just-refreshed / just-completed flags stay
// set before their scheduled clear fires.
const FlashDuration = 1500 * time.Millisecond

// Flags is one panel's transient visual state. Running is true strictly
// between the start and the settle of an in-flight fetch; JustRefreshed and
// JustCompleted are mutually exclusive flashes that expire on their own.
type Flags struct {
	Running       bool
	JustRefreshed bool
	JustCompleted bool
}

// Tracker owns the per-panel flags and their clear timers. Setting a flash
// flag schedules a clear after FlashDuration; setting it again stops the
// pending timer and starts a fresh one, so repeated refreshes extend the
// flash instead of stacking clears. Clear callbacks run off the event loop,
// hence the mutex.
type Tracker struct {
	mu     sync.Mutex
	flags  map[PanelName]Flags
	clears map[PanelName]*time.Timer
	delay  time.Duration
	closed bool
}

// NewTracker returns an empty tracker using FlashDuration for clears.
func NewTracker() *Tracker {
	return &Tracker{
		flags:  make(map[PanelName]Flags),
		clears: make(map[PanelName]*time.Timer),
		delay:  FlashDuration,
	}
}

// SetRunning flips the running flag immediately. No timer is involved.
func (t *Tracker) SetRunning(name PanelName, running bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	f := t.flags[name]
	f.Running = running
	t.flags[name] = f
}

// SetRefreshed flashes the just-refreshed flag.
func (t *Tracker) SetRefreshed(name PanelName) {
	t.flash(name, false)
}

// SetCompleted flashes the just-completed flag.
func (t *Tracker) SetCompleted(name PanelName) {
	t.flash(name, true)
}

// StartAsync marks a fetch as in flight.
func (t *Tracker) StartAsync(name PanelName) {
	t.SetRunning(name, true)
}

// EndAsync settles a fetch: running clears, then the panel flashes
// just-completed or just-refreshed.
func (t *Tracker) EndAsync(name PanelName, completed bool) {
	t.SetRunning(name, false)
	if completed {
		t.SetCompleted(name)
	} else {
		t.SetRefreshed(name)
	}
}

// State returns the panel's flags; panels never touched report the all-false
// zero value.
func (t *Tracker) State(name PanelName) Flags {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags[name]
}

// Close cancels every pending clear. A timer firing after teardown would
// mutate state nobody owns anymore, so cancellation here is mandatory, not
// best-effort.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for name, timer := range t.clears {
		timer.Stop()
		delete(t.clears, name)
	}
}

// flash sets exactly one of the two flash flags and (re)schedules its clear.
// One timer per panel suffices because the flags are mutually exclusive:
// whichever flag was pending is superseded by this one.
func (t *Tracker) flash(name PanelName, completed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	f := t.flags[name]
	f.JustRefreshed = !completed
	f.JustCompleted = completed
	t.flags[name] = f

	if timer, ok := t.clears[name]; ok {
		timer.Stop()
	}
	t.clears[name] = time.AfterFunc(t.delay, func() {
		t.clearFlash(name)
	})
}

func (t *Tracker) clearFlash(name PanelName) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	f := t.flags[name]
	f.JustRefreshed = false
	f.JustCompleted = false
	t.flags[name] = f
	delete(t.clears, name)
}
