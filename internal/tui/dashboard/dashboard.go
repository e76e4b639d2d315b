// Package dashboard runs the full-screen terminal dashboard: a grid of
// panels over a shared refresh engine, driven by one bubbletea event loop.
// Fetches and flash timers live elsewhere; everything here runs on the loop.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/neochoon/agenthud-sub001/internal/config"
	"github.com/neochoon/agenthud-sub001/internal/notify"
	"github.com/neochoon/agenthud-sub001/internal/refresh"
	"github.com/neochoon/agenthud-sub001/internal/source"
	"github.com/neochoon/agenthud-sub001/internal/tui/dashboard/panels"
	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/watcher"
)

// animInterval paces spinners and status dots. One shared ticker animates
// everything; panels derive their frame from a single counter.
const animInterval = 150 * time.Millisecond

// resultsChangedMsg reports that the test results file changed on disk.
type resultsChangedMsg struct{}

// animTickMsg advances the shared animation counter.
type animTickMsg time.Time

// Model is the dashboard's bubbletea model. It owns the orchestrator, the
// panels, and the supporting services; panels themselves are passive
// renderers that only hold data and state pushed into them here.
type Model struct {
	cfg      *config.Config
	orch     *refresh.Orchestrator
	keymap   *refresh.Keymap
	watch    *watcher.Watcher // nil when the results file cannot be watched
	notifier *notify.Notifier

	panels []panels.Panel
	byName map[refresh.PanelName]panels.Panel

	width  int
	height int
	tier   layout.Tier
	ready  bool
	anim   int

	project   string // last seen project name, shown in the header
	tests     source.TestsData
	haveTests bool
}

// New builds the dashboard model on the real fetchers and blocks on the
// first fetch of every enabled panel, so the program starts fully drawn.
func New(cfg *config.Config) Model {
	set := refresh.NewPolicySet(cfg.Policies()...)
	orch := refresh.NewOrchestrator(context.Background(), set, source.Fetchers(cfg))
	return NewWith(cfg, orch)
}

// NewWith builds the model on a prepared orchestrator. Tests inject fake
// fetchers through it.
func NewWith(cfg *config.Config, orch *refresh.Orchestrator) Model {
	m := Model{
		cfg:      cfg,
		orch:     orch,
		keymap:   orch.BuildKeymap(func() tea.Cmd { return tea.Quit }),
		notifier: notify.New(cfg.Notifications),
		byName:   make(map[refresh.PanelName]panels.Panel),
	}
	m.buildPanels()

	if w, err := watcher.Watch(cfg.ResultsFile); err == nil {
		m.watch = w
	} else {
		slog.Warn("results watcher disabled", "path", cfg.ResultsFile, "error", err)
	}

	// First paint fetches inline and skips Apply: nothing should flash
	// before the user has seen a single frame.
	for _, p := range orch.Policies().Enabled() {
		m = m.storeResult(orch.RefreshSync(p.Name))
	}
	return m
}

// buildPanels constructs one renderer per enabled policy, in policy order,
// with the hotkey the keymap allocated to it (manual panels only).
func (m *Model) buildPanels() {
	for _, pol := range m.orch.Policies().Enabled() {
		hotkey := ""
		if hk, ok := m.keymap.ForPanel(pol.Name); ok {
			hotkey = string(hk.Key)
		}
		var p panels.Panel
		switch pol.Name {
		case refresh.PanelProject:
			p = panels.NewProjectPanel(pol.Interval, hotkey)
		case refresh.PanelGit:
			p = panels.NewGitPanel(pol.Interval, hotkey)
		case refresh.PanelTests:
			p = panels.NewTestsPanel(pol.Interval, hotkey)
		case refresh.PanelClaude:
			p = panels.NewClaudePanel(pol.Interval, hotkey)
		case refresh.PanelOtherSessions:
			p = panels.NewSessionsPanel(pol.Interval, hotkey)
		default:
			p = panels.NewCustomPanel(string(pol.Name), pol.Label, pol.Interval, hotkey)
		}
		m.panels = append(m.panels, p)
		m.byName[pol.Name] = p
	}
}

// Init arms the refresh timers, the animation ticker, and the results
// listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.orch.Init(), m.animTick()}
	if m.watch != nil {
		cmds = append(cmds, m.listenResults())
	}
	return tea.Batch(cmds...)
}

// Update is the single event loop. Scheduling decisions are delegated to the
// orchestrator; this switch only routes messages and stores results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tier = layout.TierForWidth(msg.Width)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if cmd, ok := m.keymap.Handle(msg); ok {
			return m, cmd
		}
		return m, nil

	case refresh.ResultMsg:
		m.orch.Apply(msg)
		return m.storeResult(msg), nil

	case refresh.PanelTickMsg:
		return m, m.orch.HandlePanelTick(msg)

	case refresh.ClockTickMsg:
		return m, m.orch.HandleClockTick()

	case resultsChangedMsg:
		// The watcher saw the results file change; re-read it right away
		// instead of waiting for a hotkey.
		return m, tea.Batch(m.orch.RefreshAsync(refresh.PanelTests), m.listenResults())

	case animTickMsg:
		m.anim++
		return m, m.animTick()
	}
	return m, nil
}

func (m Model) animTick() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// listenResults blocks on the watcher channel and resolves to one change
// message; Update re-arms it. A closed channel resolves to nil, which ends
// the listen loop for good.
func (m Model) listenResults() tea.Cmd {
	ch := m.watch.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return resultsChangedMsg{}
	}
}

// storeResult routes settled fetch data onto its panel. Data is nil when the
// fetch errored, so dispatch goes by panel name, not payload type.
func (m Model) storeResult(msg refresh.ResultMsg) Model {
	p, ok := m.byName[msg.Panel]
	if !ok {
		return m
	}
	switch msg.Panel {
	case refresh.PanelProject:
		data, _ := msg.Data.(source.ProjectData)
		p.(*panels.ProjectPanel).SetData(data, msg.Err)
		if msg.Err == nil {
			m.project = data.Name
		}
	case refresh.PanelGit:
		data, _ := msg.Data.(source.GitData)
		p.(*panels.GitPanel).SetData(data, msg.Err)
	case refresh.PanelTests:
		data, _ := msg.Data.(source.TestsData)
		p.(*panels.TestsPanel).SetData(data, msg.Err)
		if msg.Err == nil {
			m.tests = data
			m.haveTests = true
			m.notifyTests(data)
		}
	case refresh.PanelClaude:
		data, _ := msg.Data.(source.ClaudeData)
		p.(*panels.ClaudePanel).SetData(data, msg.Err)
	case refresh.PanelOtherSessions:
		data, _ := msg.Data.(source.OtherSessionsData)
		p.(*panels.SessionsPanel).SetData(data, msg.Err)
	default:
		data, _ := msg.Data.(source.CustomData)
		p.(*panels.CustomPanel).SetData(data, msg.Err)
	}
	if msg.Err != nil {
		slog.Warn("panel refresh failed", "panel", msg.Panel, "error", msg.Err)
		m.sendNotification(notify.NewPanelErrorEvent(string(msg.Panel), msg.Err.Error()))
	}
	return m
}

// notifyTests raises run-transition notifications: new failures always win,
// a recovery fires only when the run is fully green again. The very first
// read after startup carries no delta and stays silent.
func (m Model) notifyTests(data source.TestsData) {
	if !data.Found {
		return
	}
	if len(data.Delta.New) > 0 {
		names := make([]string, 0, len(data.Delta.New))
		for _, f := range data.Delta.New {
			names = append(names, f.Name)
		}
		m.sendNotification(notify.NewTestFailuresEvent(names))
		return
	}
	if len(data.Delta.Fixed) > 0 && data.Results.AllPassed() {
		m.sendNotification(notify.NewTestRecoveredEvent(data.Results.Passed))
	}
}

func (m Model) sendNotification(event notify.Event) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(event); err != nil {
		slog.Debug("notification failed", "event", event.Type, "error", err)
	}
}

// Close releases everything the model owns. Run defers it; direct users of
// New must call it themselves.
func (m Model) Close() {
	m.orch.Close()
	if m.watch != nil {
		if err := m.watch.Close(); err != nil {
			slog.Debug("closing watcher", "error", err)
		}
	}
	if m.notifier != nil {
		if err := m.notifier.Close(); err != nil {
			slog.Debug("closing notifier", "error", err)
		}
	}
}

// Run starts the dashboard in the alternate screen and blocks until quit.
// The terminal size is probed up front so the very first frame is laid out
// instead of a placeholder waiting for the initial WindowSizeMsg.
func Run(cfg *config.Config) error {
	m := New(cfg)
	defer m.Close()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		m.width, m.height = w, h
		m.tier = layout.TierForWidth(w)
		m.ready = true
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
