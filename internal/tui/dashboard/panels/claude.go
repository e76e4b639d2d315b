package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/source"
	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/icons"
	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/tui/styles"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// ClaudePanel shows agent activity from the session log: current state, last
// tool use, and the recent event trail.
type ClaudePanel struct {
	PanelBase
	data source.ClaudeData
}

func claudeConfig(interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              "claude",
		Title:           "Claude",
		Icon:            icons.Current().Robot,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       8,
	}
}

// NewClaudePanel creates the agent activity panel.
func NewClaudePanel(interval time.Duration, hotkey string) *ClaudePanel {
	return &ClaudePanel{PanelBase: NewPanelBase(claudeConfig(interval, hotkey))}
}

// SetData updates the panel data.
func (p *ClaudePanel) SetData(data source.ClaudeData, err error) {
	if err == nil {
		p.data = data
	}
	p.recordResult(err)
}

// stateColor maps an agent state to its indicator color.
func (p *ClaudePanel) stateColor(t theme.Theme) lipgloss.Color {
	switch p.data.State {
	case "working":
		return t.Green
	case "waiting":
		return t.Yellow
	default:
		return t.Overlay
	}
}

// View renders the panel.
func (p *ClaudePanel) View() string {
	t := theme.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("looking for activity log…", w))
	}
	if !p.data.Found && p.Err() == nil {
		return p.frame(components.RenderState(components.StateOptions{
			Kind:    components.StateEmpty,
			Message: "no agent activity log found",
			Hint:    "set claude_log in the config",
			Width:   w,
		}))
	}

	var body strings.Builder

	color := p.stateColor(t)
	dot := styles.StatusDot(color, p.data.State == "working", p.state.Anim)
	state := lipgloss.NewStyle().Foreground(color).Bold(true).Render(p.data.State)
	body.WriteString(dot + " " + state + "\n")

	if p.data.LastEvent != "" {
		last := p.data.LastEvent
		if p.data.LastTool != "" {
			last += ": " + p.data.LastTool
		}
		if !p.data.LastTime.IsZero() {
			last += fmt.Sprintf(" (%s ago)", components.FormatAge(time.Since(p.data.LastTime)))
		}
		body.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render(layout.Truncate(last, w)) + "\n")
	}

	if len(p.data.Recent) > 0 {
		body.WriteString(styles.Divider(w, "", t.Surface1) + "\n")

		avail := p.Height() - 9
		if avail < 1 {
			avail = 1
		}
		events := p.data.Recent
		if len(events) > avail {
			events = events[len(events)-avail:]
		}
		for _, ev := range events {
			body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(layout.Truncate(ev, w)) + "\n")
		}
	}

	return p.frame(body.String())
}
