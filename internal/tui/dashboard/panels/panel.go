// Package panels renders the dashboard tiles. Panels are passive: the
// dashboard pushes typed data, size, and refresh state in and asks each
// panel for a frame. All scheduling lives in the refresh engine.
package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/styles"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// PanelConfig holds static display configuration for one panel.
type PanelConfig struct {
	// ID is the panel name as the refresh engine knows it.
	ID string

	// Title is the display title for the panel header.
	Title string

	// Icon is the title glyph; empty means no icon.
	Icon string

	// RefreshInterval is the panel's automatic refresh cadence.
	// Zero means manual only.
	RefreshInterval time.Duration

	// Hotkey is the manual refresh key, shown as a title badge.
	// Empty for timed panels.
	Hotkey string

	// MinHeight is the minimum height the panel needs to render properly.
	MinHeight int
}

// State carries the per-frame refresh state pushed in before rendering.
type State struct {
	// Running means a fetch is in flight; the title shows a spinner.
	Running bool

	// JustRefreshed flashes the border after a refresh was triggered.
	JustRefreshed bool

	// JustCompleted flashes the border after an async fetch landed.
	JustCompleted bool

	// Countdown is the seconds until the next automatic refresh.
	// Zero hides the countdown; a live countdown never reads below 1.
	Countdown int

	// Anim is the shared animation tick driving the spinner frames.
	Anim int
}

// Panel is one dashboard tile.
type Panel interface {
	Config() PanelConfig
	SetSize(width, height int)
	SetState(s State)
	View() string
}

// PanelBase provides the shared frame: rounded border whose color tracks the
// refresh state, a centered title with badges, an inline error line, and a
// right-aligned freshness footer. Embed in concrete panel types.
type PanelBase struct {
	config PanelConfig
	width  int
	height int
	state  State

	lastUpdate time.Time // last successful fetch
	err        error
}

// NewPanelBase creates a new PanelBase with the given config.
func NewPanelBase(cfg PanelConfig) PanelBase {
	return PanelBase{config: cfg}
}

// SetSize implements Panel.SetSize
func (b *PanelBase) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// SetState implements Panel.SetState
func (b *PanelBase) SetState(s State) {
	b.state = s
}

// Config implements Panel.Config
func (b *PanelBase) Config() PanelConfig {
	return b.config
}

// Width returns the current panel width
func (b *PanelBase) Width() int {
	return b.width
}

// Height returns the current panel height
func (b *PanelBase) Height() int {
	return b.height
}

// LastUpdate returns the time of the last successful data update.
func (b *PanelBase) LastUpdate() time.Time {
	return b.lastUpdate
}

// Err returns the most recent fetch error, nil after a successful fetch.
func (b *PanelBase) Err() error {
	return b.err
}

// recordResult stores a fetch outcome. The timestamp only advances on
// success so staleness tracks real data age.
func (b *PanelBase) recordResult(err error) {
	b.err = err
	if err == nil {
		b.lastUpdate = time.Now()
	}
}

// bodyWidth is the inner width available to panel content.
func (b *PanelBase) bodyWidth() int {
	w := b.width
	if w < 20 {
		w = 20
	}
	return w - 4
}

// frame wraps a panel body in the shared chrome and pins it to the panel
// height so varying content never causes layout jitter.
func (b *PanelBase) frame(body string) string {
	t := theme.Current()
	w, h := b.width, b.height
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}

	borderColor := t.Surface1
	switch {
	case b.state.JustCompleted:
		borderColor = t.Success
	case b.state.JustRefreshed:
		borderColor = t.Primary
	case b.err != nil:
		borderColor = t.Error
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(w - 2).
		Height(h - 2).
		Padding(0, 1)

	title := b.config.Title
	if b.config.Icon != "" {
		title = b.config.Icon + " " + title
	}
	if b.state.Running {
		spin := styles.GetSpinnerFrame(b.state.Anim, styles.SpinnerFrames)
		title += " " + lipgloss.NewStyle().Foreground(t.Primary).Render(spin)
	}
	if b.state.Countdown > 0 {
		title += " " + lipgloss.NewStyle().Foreground(t.Overlay).Render(fmt.Sprintf("(%ds)", b.state.Countdown))
	} else if b.config.Hotkey != "" {
		title += " " + styles.Badge(b.config.Hotkey, t.Surface0, t.Subtext)
	}
	if b.err != nil {
		title += " " + lipgloss.NewStyle().
			Background(t.Error).
			Foreground(t.Base).
			Bold(true).
			Padding(0, 1).
			Render("ERR")
	} else if badge := components.RenderStaleBadge(b.lastUpdate, b.config.RefreshInterval); badge != "" {
		title += " " + badge
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Lavender).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Surface1).
		Width(w - 4).
		Align(lipgloss.Center)

	var content strings.Builder
	content.WriteString(headerStyle.Render(title) + "\n")

	if b.err != nil {
		content.WriteString(components.ErrorState(b.err.Error(), "", w-4) + "\n")
	}

	content.WriteString(body)

	if footer := components.RenderAgeFooter(b.lastUpdate, b.config.RefreshInterval, w-4); footer != "" {
		content.WriteString("\n" + footer)
	}

	return boxStyle.Render(FitToHeight(content.String(), h-4))
}

// PadToHeight pads content with empty lines to fill the specified height.
// This prevents layout jitter when content varies in length.
func PadToHeight(content string, targetHeight int) string {
	if targetHeight <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	currentHeight := len(lines)
	if currentHeight >= targetHeight {
		return content
	}
	for i := currentHeight; i < targetHeight; i++ {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// TruncateToHeight truncates content to fit within targetHeight lines.
func TruncateToHeight(content string, targetHeight int) string {
	if targetHeight <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= targetHeight {
		return content
	}
	return strings.Join(lines[:targetHeight], "\n")
}

// FitToHeight ensures content exactly fills targetHeight lines,
// truncating if too long or padding if too short.
func FitToHeight(content string, targetHeight int) string {
	if targetHeight <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")

	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}

	for len(lines) < targetHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
