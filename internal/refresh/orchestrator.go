package refresh

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Fetcher loads one panel's data. Fetchers run outside the event loop via
// the commands RefreshAsync returns; they must return errors rather than
// panic, and they are injected at construction so tests substitute fakes.
type Fetcher func(ctx context.Context) (any, error)

// ResultMsg carries one settled fetch back into the event loop. Err rides
// along as a payload: an erroring panel is idle with an error, not a
// separate state.
type ResultMsg struct {
	Panel     PanelName
	Data      any
	Err       error
	Completed bool
}

// PanelTickMsg fires one timed panel's own interval timer.
type PanelTickMsg struct {
	Panel PanelName
}

// ClockTickMsg drives the shared one-second countdown.
type ClockTickMsg time.Time

// Orchestrator ties policies, countdown, feedback and fetchers together.
// Every method is called from the single event loop; the only things running
// elsewhere are the fetch closures the runtime executes for us and the
// tracker's clear timers, which take the tracker's own lock.
type Orchestrator struct {
	policies PolicySet
	fetchers map[PanelName]Fetcher
	clock    *Clock
	tracker  *Tracker
	ctx      context.Context
	closed   bool
}

// NewOrchestrator wires the scheduling core. ctx is handed to every fetch;
// Close does not cancel it; an in-flight fetch is allowed to finish and its
// result is discarded instead.
func NewOrchestrator(ctx context.Context, set PolicySet, fetchers map[PanelName]Fetcher) *Orchestrator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Orchestrator{
		policies: set,
		fetchers: fetchers,
		clock:    NewClock(set),
		tracker:  NewTracker(),
		ctx:      ctx,
	}
}

// Init schedules the countdown ticker plus one interval timer per timed
// panel. Manual panels get no timer, ever. Initial data comes from
// RefreshSync before the program starts.
func (o *Orchestrator) Init() tea.Cmd {
	cmds := []tea.Cmd{o.scheduleClockTick()}
	for _, p := range o.policies.Timed() {
		cmds = append(cmds, o.schedulePanelTick(p.Name, p.Interval))
	}
	return tea.Batch(cmds...)
}

// RefreshSync fetches one panel inline. Used only for the first paint, where
// blocking is acceptable and nothing should flash.
func (o *Orchestrator) RefreshSync(name PanelName) ResultMsg {
	fetch, ok := o.fetchers[name]
	if !ok {
		return ResultMsg{Panel: name}
	}
	data, err := fetch(o.ctx)
	return ResultMsg{Panel: name, Data: data, Err: err, Completed: name == PanelTests}
}

// RefreshAsync marks the panel running right away and returns the command
// that performs the fetch. There is deliberately no in-flight guard: if a
// second trigger lands while a fetch is out, both run and the last result to
// arrive wins.
func (o *Orchestrator) RefreshAsync(name PanelName) tea.Cmd {
	if o.closed {
		return nil
	}
	p, ok := o.policies.Get(name)
	if !ok || !p.Enabled {
		return nil
	}
	fetch, ok := o.fetchers[name]
	if !ok {
		return nil
	}

	o.tracker.StartAsync(name)
	completed := name == PanelTests
	ctx := o.ctx
	return func() tea.Msg {
		data, err := fetch(ctx)
		return ResultMsg{Panel: name, Data: data, Err: err, Completed: completed}
	}
}

// RefreshAll triggers every enabled panel, manual ones included, and
// restarts the timed panels' countdowns. Manual panels keep no countdown
// either way.
func (o *Orchestrator) RefreshAll() tea.Cmd {
	if o.closed {
		return nil
	}
	var cmds []tea.Cmd
	for _, p := range o.policies.Enabled() {
		if cmd := o.RefreshAsync(p.Name); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if !p.Manual() {
			o.clock.Reset(p.Name)
		}
	}
	return tea.Batch(cmds...)
}

// Apply settles a fetch result: running clears, the panel flashes completed
// (tests) or refreshed (everything else), and its countdown restarts. The
// caller stores msg.Data and msg.Err on the panel itself.
func (o *Orchestrator) Apply(msg ResultMsg) {
	if o.closed {
		return
	}
	o.tracker.EndAsync(msg.Panel, msg.Completed)
	o.clock.Reset(msg.Panel)
}

// HandlePanelTick refreshes the ticked panel and re-arms its timer.
func (o *Orchestrator) HandlePanelTick(msg PanelTickMsg) tea.Cmd {
	if o.closed {
		return nil
	}
	p, ok := o.policies.Get(msg.Panel)
	if !ok || !p.Enabled || p.Manual() {
		return nil
	}
	o.clock.Reset(msg.Panel)
	return tea.Batch(o.RefreshAsync(msg.Panel), o.schedulePanelTick(msg.Panel, p.Interval))
}

// HandleClockTick advances every countdown and re-arms the shared ticker.
func (o *Orchestrator) HandleClockTick() tea.Cmd {
	if o.closed {
		return nil
	}
	o.clock.Tick()
	return o.scheduleClockTick()
}

// BuildKeymap allocates hotkeys for the manual panels and appends the fixed
// refresh-all and quit entries.
func (o *Orchestrator) BuildKeymap(quit Action) *Keymap {
	var manual []ManualPanel
	for _, p := range o.policies.Manual() {
		name := p.Name
		manual = append(manual, ManualPanel{
			Name:   name,
			Label:  p.Label,
			Action: func() tea.Cmd { return o.RefreshAsync(name) },
		})
	}
	return Allocate(manual, o.RefreshAll, quit)
}

// Countdown exposes the panel's remaining seconds for rendering; ok is
// false for manual panels, which show no countdown at all.
func (o *Orchestrator) Countdown(name PanelName) (int, bool) {
	return o.clock.Remaining(name)
}

// Feedback exposes the panel's transient flags for rendering.
func (o *Orchestrator) Feedback(name PanelName) Flags {
	return o.tracker.State(name)
}

// Policies returns the configured panel set.
func (o *Orchestrator) Policies() PolicySet {
	return o.policies
}

// Close tears the scheduler down: handlers become no-ops and pending flash
// clears are cancelled so no timer mutates state after the loop is gone.
func (o *Orchestrator) Close() {
	o.closed = true
	o.tracker.Close()
}

func (o *Orchestrator) scheduleClockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}

func (o *Orchestrator) schedulePanelTick(name PanelName, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PanelTickMsg{Panel: name}
	})
}
