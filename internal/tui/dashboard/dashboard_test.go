package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/config"
	"github.com/neochoon/agenthud-sub001/internal/refresh"
	"github.com/neochoon/agenthud-sub001/internal/source"
	"github.com/neochoon/agenthud-sub001/internal/testreport"
)

// testConfig loads a minimal config from a temp dir so intervals resolve
// the same way they do in production. Notifications stay off.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "results_file: " + filepath.Join(dir, "results.json") + "\n" +
		"notifications:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func staticFetcher(data any, err error) refresh.Fetcher {
	return func(context.Context) (any, error) { return data, err }
}

func testFetchers() map[refresh.PanelName]refresh.Fetcher {
	return map[refresh.PanelName]refresh.Fetcher{
		refresh.PanelProject: staticFetcher(source.ProjectData{
			Root: "/work/demo", Name: "demo", Language: "Go", Files: 12, Dirs: 3,
		}, nil),
		refresh.PanelGit: staticFetcher(source.GitData{
			Branch: "main", Head: "abc1234", Staged: 1,
		}, nil),
		refresh.PanelTests: staticFetcher(source.TestsData{
			Found: true,
			Path:  "results.json",
			Results: testreport.Results{
				Hash:    "abc1234deadbeef",
				Summary: testreport.Summary{Passed: 8},
			},
		}, nil),
		refresh.PanelClaude: staticFetcher(source.ClaudeData{
			Found: true, State: "idle", Path: "log.jsonl",
		}, nil),
		refresh.PanelOtherSessions: staticFetcher(source.OtherSessionsData{}, nil),
	}
}

func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	orch := refresh.NewOrchestrator(context.Background(),
		refresh.NewPolicySet(cfg.Policies()...), testFetchers())
	m := NewWith(cfg, orch)
	t.Cleanup(m.Close)
	return m
}

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewSeedsFirstPaintWithoutFlashing(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	for _, name := range []refresh.PanelName{refresh.PanelProject, refresh.PanelGit, refresh.PanelTests} {
		if got := m.orch.Feedback(name); got.Running || got.JustRefreshed || got.JustCompleted {
			t.Errorf("first paint touched %s feedback flags: %+v", name, got)
		}
	}

	view := sized(t, m, 120, 40).View()
	for _, want := range []string{"demo", "main", "8 passed"} {
		if !strings.Contains(view, want) {
			t.Errorf("seeded view missing %q", want)
		}
	}
}

func TestViewBeforeFirstSize(t *testing.T) {
	m := newTestModel(t, testConfig(t))
	if view := m.View(); !strings.Contains(view, "starting") {
		t.Errorf("unsized view = %q", view)
	}
}

func TestViewTooSmall(t *testing.T) {
	// 80x24 is too short for five stacked rows in the narrow tier; the
	// same height is fine once the width allows two columns.
	for _, tc := range []struct{ w, h int }{
		{50, 12}, {80, 24},
	} {
		m := sized(t, newTestModel(t, testConfig(t)), tc.w, tc.h)
		if view := m.View(); !strings.Contains(view, "terminal too small") {
			t.Errorf("%dx%d view = %q", tc.w, tc.h, view)
		}
	}

	m := sized(t, newTestModel(t, testConfig(t)), 120, 24)
	if view := m.View(); strings.Contains(view, "terminal too small") {
		t.Error("120x24 refused to render")
	}
}

func TestViewFitsTerminal(t *testing.T) {
	for _, tc := range []struct{ w, h int }{
		{80, 34}, {120, 40}, {200, 50},
	} {
		m := sized(t, newTestModel(t, testConfig(t)), tc.w, tc.h)
		lines := strings.Split(m.View(), "\n")
		if len(lines) > tc.h {
			t.Errorf("%dx%d: view has %d lines", tc.w, tc.h, len(lines))
		}
		for i, ln := range lines {
			if got := lipgloss.Width(ln); got > tc.w {
				t.Errorf("%dx%d: line %d is %d cells wide", tc.w, tc.h, i, got)
			}
		}
	}
}

func TestResultRoutesToItsPanel(t *testing.T) {
	m := sized(t, newTestModel(t, testConfig(t)), 120, 40)

	updated, _ := m.Update(refresh.ResultMsg{
		Panel: refresh.PanelGit,
		Data:  source.GitData{Branch: "feature/login"},
	})
	m = updated.(Model)

	if !m.orch.Feedback(refresh.PanelGit).JustRefreshed {
		t.Error("settled result did not flash the panel")
	}
	if view := m.View(); !strings.Contains(view, "feature/login") {
		t.Error("view does not show the routed branch")
	}
}

func TestResultErrorShownWithoutDroppingData(t *testing.T) {
	m := sized(t, newTestModel(t, testConfig(t)), 120, 40)

	updated, _ := m.Update(refresh.ResultMsg{
		Panel: refresh.PanelGit,
		Err:   errors.New("git exploded"),
	})
	view := updated.(Model).View()

	if !strings.Contains(view, "git exploded") {
		t.Error("fetch error not rendered")
	}
	if !strings.Contains(view, "main") {
		t.Error("previous branch dropped on error")
	}
}

func TestTestsResultUpdatesHeaderBadge(t *testing.T) {
	m := sized(t, newTestModel(t, testConfig(t)), 120, 40)

	updated, _ := m.Update(refresh.ResultMsg{
		Panel:     refresh.PanelTests,
		Completed: true,
		Data: source.TestsData{
			Found: true,
			Results: testreport.Results{
				Summary: testreport.Summary{
					Passed: 6, Failed: 2,
					Failures: []testreport.Failure{{File: "a.go", Name: "TestA"}, {File: "b.go", Name: "TestB"}},
				},
			},
		},
	})
	if view := updated.(Model).View(); !strings.Contains(view, "2 failed") {
		t.Error("header badge does not reflect the failing run")
	}
}

func TestResultForUnknownPanelIgnored(t *testing.T) {
	m := sized(t, newTestModel(t, testConfig(t)), 120, 40)
	updated, _ := m.Update(refresh.ResultMsg{Panel: "ghost", Data: 42})
	_ = updated.(Model).View()
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c yielded %T, want tea.QuitMsg", cmd())
	}

	_, cmd = m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q yielded %T, want tea.QuitMsg", cmd())
	}
}

func TestHotkeyStartsManualRefresh(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	_, cmd := m.Update(keyMsg('t'))
	if cmd == nil {
		t.Fatal("tests hotkey returned no command")
	}
	if !m.orch.Feedback(refresh.PanelTests).Running {
		t.Error("tests panel not marked running on hotkey press")
	}
}

func TestResultsChangedRefreshesTests(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	updated, cmd := m.Update(resultsChangedMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("results change returned no command")
	}
	if !m.orch.Feedback(refresh.PanelTests).Running {
		t.Error("results change did not start a tests fetch")
	}
}

func TestPanelTickRefreshesTimedPanel(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	_, cmd := m.Update(refresh.PanelTickMsg{Panel: refresh.PanelGit})
	if cmd == nil {
		t.Fatal("panel tick returned no command")
	}
	if !m.orch.Feedback(refresh.PanelGit).Running {
		t.Error("panel tick did not start a fetch")
	}
}

func TestClockTickAdvancesCountdowns(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	before, ok := m.orch.Countdown(refresh.PanelGit)
	if !ok {
		t.Fatal("git panel has no countdown")
	}
	updated, cmd := m.Update(refresh.ClockTickMsg(time.Now()))
	if cmd == nil {
		t.Error("clock tick did not re-arm the ticker")
	}
	after, _ := updated.(Model).orch.Countdown(refresh.PanelGit)
	if after != before-1 {
		t.Errorf("countdown = %d after tick, want %d", after, before-1)
	}
}

func TestAnimTickAdvancesCounter(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	updated, cmd := m.Update(animTickMsg(time.Now()))
	if cmd == nil {
		t.Error("anim tick did not re-arm")
	}
	if got := updated.(Model).anim; got != m.anim+1 {
		t.Errorf("anim = %d, want %d", got, m.anim+1)
	}
}

func TestBuildPanelsFollowsPolicyOrder(t *testing.T) {
	m := newTestModel(t, testConfig(t))

	wantOrder := []string{"project", "git", "tests", "claude", "other_sessions"}
	if len(m.panels) != len(wantOrder) {
		t.Fatalf("built %d panels, want %d", len(m.panels), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got := m.panels[i].Config().ID; got != want {
			t.Errorf("panel %d = %q, want %q", i, got, want)
		}
	}
}

func TestCustomPanelBuiltFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "results_file: " + filepath.Join(dir, "results.json") + "\n" +
		"notifications:\n  enabled: false\n" +
		"custom_panels:\n  - name: deploy\n    title: Deploy\n    command: \"true\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, cfg)
	last := m.panels[len(m.panels)-1].Config()
	if last.ID != "deploy" || last.Title != "Deploy" {
		t.Errorf("custom panel config = %+v", last)
	}
	if last.Hotkey != "d" {
		t.Errorf("custom panel hotkey = %q, want \"d\"", last.Hotkey)
	}
}

func TestStatusBarListsBindings(t *testing.T) {
	view := sized(t, newTestModel(t, testConfig(t)), 140, 40).View()
	for _, want := range []string{"refresh all", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("status bar missing %q", want)
		}
	}
}
