package panels

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/neochoon/agenthud-sub001/internal/source"
	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/icons"
	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/tui/styles"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// CustomPanel renders user-defined panel data from a command or file. A
// structured payload gets summary, items, progress, and stats treatment;
// plain text is shown as-is.
type CustomPanel struct {
	PanelBase
	data source.CustomData
}

func customConfig(name, title string, interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              name,
		Title:           title,
		Icon:            icons.Current().Sparkle,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       6,
	}
}

// NewCustomPanel creates a custom panel for the named config entry.
func NewCustomPanel(name, title string, interval time.Duration, hotkey string) *CustomPanel {
	return &CustomPanel{PanelBase: NewPanelBase(customConfig(name, title, interval, hotkey))}
}

// SetData updates the panel data. A payload title overrides the configured
// one until the next fetch.
func (p *CustomPanel) SetData(data source.CustomData, err error) {
	if err == nil {
		p.data = data
		if data.Title != "" {
			p.config.Title = data.Title
		}
	}
	p.recordResult(err)
}

// View renders the panel.
func (p *CustomPanel) View() string {
	t := theme.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("running…", w))
	}

	if p.data.Plain {
		wrapped := wordwrap.String(p.data.Summary, w)
		return p.frame(lipgloss.NewStyle().Foreground(t.Text).Render(wrapped))
	}

	var body strings.Builder

	if p.data.Summary != "" {
		summary := lipgloss.NewStyle().Foreground(t.Text).Render(layout.Truncate(p.data.Summary, w))
		body.WriteString(styles.CenterText(summary, w) + "\n")
	}

	if p.data.Progress != nil {
		pct := *p.data.Progress
		body.WriteString(styles.ProgressBar(pct, w, "█", "░", string(t.Blue), string(t.Green)) + "\n")
		body.WriteString(styles.CenterText(lipgloss.NewStyle().Foreground(t.Overlay).Render(fmt.Sprintf("%.0f%%", pct*100)), w) + "\n")
	}

	if len(p.data.Items) > 0 {
		dot := icons.Current().Dot
		avail := p.Height() - 8
		if avail < 1 {
			avail = 1
		}
		for i, item := range p.data.Items {
			if i >= avail {
				more := fmt.Sprintf("…and %d more", len(p.data.Items)-i)
				body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(more) + "\n")
				break
			}
			body.WriteString(dot + " " + lipgloss.NewStyle().Foreground(t.Subtext).Render(layout.Truncate(item, w-2)) + "\n")
		}
	}

	if len(p.data.Stats) > 0 {
		keys := make([]string, 0, len(p.data.Stats))
		for k := range p.data.Stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			label := lipgloss.NewStyle().Foreground(t.Overlay).Render(k)
			value := lipgloss.NewStyle().Foreground(t.Text).Render(p.data.Stats[k])
			gap := w - lipgloss.Width(label) - lipgloss.Width(value)
			if gap < 1 {
				gap = 1
			}
			body.WriteString(label + strings.Repeat(" ", gap) + value + "\n")
		}
	}

	return p.frame(body.String())
}
