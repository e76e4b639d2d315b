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

// SessionsPanel lists other agent processes running on the machine with
// their resource usage.
type SessionsPanel struct {
	PanelBase
	data source.OtherSessionsData
}

func sessionsConfig(interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              "other_sessions",
		Title:           "Other Sessions",
		Icon:            icons.Current().Terminal,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       7,
	}
}

// NewSessionsPanel creates the other-sessions panel.
func NewSessionsPanel(interval time.Duration, hotkey string) *SessionsPanel {
	return &SessionsPanel{PanelBase: NewPanelBase(sessionsConfig(interval, hotkey))}
}

// SetData updates the panel data.
func (p *SessionsPanel) SetData(data source.OtherSessionsData, err error) {
	if err == nil {
		p.data = data
	}
	p.recordResult(err)
}

// View renders the panel.
func (p *SessionsPanel) View() string {
	t := theme.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("scanning processes…", w))
	}
	if len(p.data.Sessions) == 0 && p.Err() == nil {
		return p.frame(components.EmptyState("no other agent sessions", w))
	}

	var body strings.Builder

	count := fmt.Sprintf("%d active", len(p.data.Sessions))
	body.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render(count) + "\n")

	avail := (p.Height() - 7) / 2
	if avail < 1 {
		avail = 1
	}
	for i, s := range p.data.Sessions {
		if i >= avail {
			more := fmt.Sprintf("…and %d more", len(p.data.Sessions)-i)
			body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(more) + "\n")
			break
		}

		name := lipgloss.NewStyle().Foreground(t.Agent).Bold(true).Render(s.Name)
		pid := lipgloss.NewStyle().Foreground(t.Overlay).Render(fmt.Sprintf("#%d", s.PID))
		usage := fmt.Sprintf("%.1f%% cpu  %.1f%% mem", s.CPU, s.Memory)
		left := name + " " + pid
		gap := w - lipgloss.Width(left) - len(usage)
		if gap < 1 {
			gap = 1
		}
		body.WriteString(left + styles.RightAlign(lipgloss.NewStyle().Foreground(t.Subtext).Render(usage), lipgloss.Width(usage)+gap) + "\n")

		detail := layout.Truncate(s.Command, w-4)
		if !s.Started.IsZero() {
			up := components.FormatAge(time.Since(s.Started))
			detail = fmt.Sprintf("%s up %s", icons.Current().Clock, up) + "  " + detail
			detail = layout.Truncate(detail, w-2)
		}
		body.WriteString("  " + lipgloss.NewStyle().Foreground(t.Overlay).Render(detail) + "\n")
	}

	return p.frame(body.String())
}
