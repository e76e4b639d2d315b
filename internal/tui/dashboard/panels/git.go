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

// GitPanel shows the repository state: branch, ahead/behind, working tree
// counts, and recent commits.
type GitPanel struct {
	PanelBase
	data source.GitData
}

func gitConfig(interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              "git",
		Title:           "Git",
		Icon:            icons.Current().Branch,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       8,
	}
}

// NewGitPanel creates the git panel.
func NewGitPanel(interval time.Duration, hotkey string) *GitPanel {
	return &GitPanel{PanelBase: NewPanelBase(gitConfig(interval, hotkey))}
}

// SetData updates the panel data.
func (p *GitPanel) SetData(data source.GitData, err error) {
	if err == nil {
		p.data = data
	}
	p.recordResult(err)
}

// View renders the panel.
func (p *GitPanel) View() string {
	t := theme.Current()
	ic := icons.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("reading repository…", w))
	}
	if p.data.Branch == "" && p.Err() == nil {
		return p.frame(components.EmptyState("not a git repository", w))
	}

	var body strings.Builder

	branch := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(p.data.Branch)
	if p.data.Ahead > 0 {
		branch += " " + lipgloss.NewStyle().Foreground(t.Green).Render(fmt.Sprintf("%s%d", ic.ArrowUp, p.data.Ahead))
	}
	if p.data.Behind > 0 {
		branch += " " + lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("%s%d", ic.ArrowDown, p.data.Behind))
	}
	body.WriteString(branch + "\n")

	tree := []string{
		lipgloss.NewStyle().Foreground(t.Green).Render(fmt.Sprintf("%d staged", p.data.Staged)),
		lipgloss.NewStyle().Foreground(t.Yellow).Render(fmt.Sprintf("%d unstaged", p.data.Unstaged)),
		lipgloss.NewStyle().Foreground(t.Overlay).Render(fmt.Sprintf("%d untracked", p.data.Untracked)),
	}
	body.WriteString(strings.Join(tree, "  ") + "\n")

	if len(p.data.Commits) > 0 {
		body.WriteString(styles.Divider(w, "", t.Surface1) + "\n")

		avail := p.Height() - 9
		if avail < 1 {
			avail = 1
		}
		for i, c := range p.data.Commits {
			if i >= avail {
				more := fmt.Sprintf("…and %d more", len(p.data.Commits)-i)
				body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(more) + "\n")
				break
			}
			hash := lipgloss.NewStyle().Foreground(t.Peach).Render(c.Hash)
			when := lipgloss.NewStyle().Foreground(t.Overlay).Render(c.When)
			subjectMax := w - lipgloss.Width(hash) - lipgloss.Width(when) - 2
			if subjectMax < 4 {
				subjectMax = 4
			}
			subject := lipgloss.NewStyle().Foreground(t.Text).Render(layout.Truncate(c.Subject, subjectMax))
			body.WriteString(hash + " " + subject + " " + when + "\n")
		}
	}

	return p.frame(body.String())
}
