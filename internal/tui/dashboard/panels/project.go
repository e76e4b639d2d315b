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

// ProjectPanel shows a snapshot of the working directory: name, detected
// language, file counts, and the most recently touched file.
type ProjectPanel struct {
	PanelBase
	data source.ProjectData
}

func projectConfig(interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              "project",
		Title:           "Project",
		Icon:            icons.Current().Folder,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       7,
	}
}

// NewProjectPanel creates the project panel.
func NewProjectPanel(interval time.Duration, hotkey string) *ProjectPanel {
	return &ProjectPanel{PanelBase: NewPanelBase(projectConfig(interval, hotkey))}
}

// SetData updates the panel data.
func (p *ProjectPanel) SetData(data source.ProjectData, err error) {
	if err == nil {
		p.data = data
	}
	p.recordResult(err)
}

// View renders the panel.
func (p *ProjectPanel) View() string {
	t := theme.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("scanning project…", w))
	}

	var body strings.Builder

	name := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(p.data.Name)
	if p.data.Language != "" {
		name += " " + styles.Badge(p.data.Language, t.Surface0, t.Teal)
	}
	body.WriteString(name + "\n")

	body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(layout.Truncate(p.data.Root, w)) + "\n\n")

	stats := fmt.Sprintf("%d files in %d dirs", p.data.Files, p.data.Dirs)
	body.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render(stats) + "\n")

	if p.data.NewestFile != "" {
		age := components.FormatAge(time.Since(p.data.NewestTime))
		newest := fmt.Sprintf("newest: %s (%s ago)", p.data.NewestFile, age)
		body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(layout.Truncate(newest, w)) + "\n")
	}

	return p.frame(body.String())
}
