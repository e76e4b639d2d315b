package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/neochoon/agenthud-sub001/internal/source"
)

func claudeFixture() source.ClaudeData {
	return source.ClaudeData{
		Path:      ".claude/activity.jsonl",
		Found:     true,
		State:     "working",
		LastEvent: "tool_use",
		LastTool:  "Edit",
		LastTime:  time.Now().Add(-30 * time.Second),
		Recent: []string{
			"tool_use: Read",
			"tool_use: Edit",
			"message: applying fix",
		},
	}
}

func TestClaudePanelView(t *testing.T) {
	p := NewClaudePanel(5*time.Second, "")
	p.SetSize(70, 18)
	p.SetData(claudeFixture(), nil)

	view := p.View()
	wants := []string{"working", "tool_use: Edit", "applying fix"}
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestClaudePanelNoLog(t *testing.T) {
	p := NewClaudePanel(5*time.Second, "")
	p.SetSize(70, 18)
	p.SetData(source.ClaudeData{Found: false}, nil)

	view := p.View()
	if !strings.Contains(view, "no agent activity log") {
		t.Error("missing log should show the empty state")
	}
	if !strings.Contains(view, "claude_log") {
		t.Error("empty state should hint at the config key")
	}
}

func TestClaudePanelShowsNewestEvents(t *testing.T) {
	data := claudeFixture()
	data.Recent = nil
	for i := 0; i < 30; i++ {
		data.Recent = append(data.Recent, "old event")
	}
	data.Recent = append(data.Recent, "newest event")

	p := NewClaudePanel(5*time.Second, "")
	p.SetSize(70, 14)
	p.SetData(data, nil)

	// The trail is oldest first; truncation must keep the newest entries.
	if view := p.View(); !strings.Contains(view, "newest event") {
		t.Error("truncated trail should keep the newest events")
	}
}
