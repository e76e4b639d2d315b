package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/refresh"
	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/dashboard/panels"
	"github.com/neochoon/agenthud-sub001/internal/tui/icons"
	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/tui/styles"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// chromeHeight is everything around the grid: the leading blank line, three
// header lines, the blank line after the grid, and the two-line status bar.
const chromeHeight = 7

// minPanelHeight is the least height one panel renders in without clipping
// its own chrome.
const minPanelHeight = 5

// View renders the whole dashboard. Panel sizes and transient state are
// pushed into the renderers here, just before each panel's View is taken.
func (m Model) View() string {
	if !m.ready {
		return "\n  starting agenthud…"
	}
	if needH := m.minHeight(); m.width < 60 || m.height < needH {
		return fmt.Sprintf("\n  terminal too small (%dx%d, need at least %dx%d)",
			m.width, m.height, 60, needH)
	}

	t := theme.Current()
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.renderHeader(t))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(t))
	return b.String()
}

func (m Model) renderHeader(t theme.Theme) string {
	return m.renderTitle(t) + "\n" +
		m.renderStatusLine(t) + "\n" +
		"  " + styles.GradientDivider(m.width-4, string(t.Blue), string(t.Mauve))
}

// renderTitle draws the name on the left and a live clock on the right.
func (m Model) renderTitle(t theme.Theme) string {
	ic := icons.Current()
	left := "  " + ic.Sparkle + " " + styles.GradientText("agenthud", string(t.Blue), string(t.Mauve))
	if m.project != "" {
		left += "  " + lipgloss.NewStyle().Foreground(t.Overlay).Render(m.project)
	}
	clock := lipgloss.NewStyle().Foreground(t.Overlay).Render(time.Now().Format("15:04:05"))
	pad := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(clock)
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + clock
}

// renderStatusLine summarizes the watcher, the latest test run, and any
// config warnings. The watcher dot animates while the tests panel fetches.
func (m Model) renderStatusLine(t theme.Theme) string {
	ic := icons.Current()
	sub := lipgloss.NewStyle().Foreground(t.Subtext)
	var parts []string

	if m.watch != nil {
		running := m.orch.Feedback(refresh.PanelTests).Running
		dot := styles.StatusDot(t.Green, running, m.anim)
		parts = append(parts, dot+" "+sub.Render("watching "+m.watch.Path()))
	} else {
		parts = append(parts, styles.StatusDot(t.Yellow, false, 0)+" "+sub.Render("results watcher off"))
	}

	if m.haveTests && m.tests.Found {
		if m.tests.Results.AllPassed() {
			parts = append(parts, styles.Badge(fmt.Sprintf("%s %d passed", ic.Check, m.tests.Results.Passed), t.Green, t.Base))
		} else {
			parts = append(parts, styles.Badge(fmt.Sprintf("%s %d failed", ic.Cross, m.tests.Results.Failed), t.Red, t.Base))
		}
	}

	if n := len(m.cfg.Warnings); n > 0 {
		label := fmt.Sprintf("%d config warning", n)
		if n > 1 {
			label += "s"
		}
		parts = append(parts, styles.Badge(label, t.Yellow, t.Base))
	}

	return "  " + strings.Join(parts, "  ")
}

// minHeight is the smallest terminal height the current tier can draw
// without clipping. Narrower terminals stack more rows, so the answer
// changes with the tier: widening the window is as good as making it taller.
func (m Model) minHeight() int {
	n := len(m.panels)
	if n == 0 {
		return chromeHeight + 1
	}
	cols := m.tier.Columns()
	if cols > n {
		cols = n
	}
	rows := (n + cols - 1) / cols
	return rows*minPanelHeight + chromeHeight
}

// renderGrid lays the panels out in tier-many columns, row by row. Cells in
// a row share its height; column widths already account for the gaps.
func (m Model) renderGrid() string {
	gridHeight := m.height - chromeHeight
	if len(m.panels) == 0 {
		return components.EmptyState("every panel is disabled", m.width-4)
	}

	cols := m.tier.Columns()
	if cols > len(m.panels) {
		cols = len(m.panels)
	}
	rows := (len(m.panels) + cols - 1) / cols
	widths := layout.ColumnWidths(m.width-4, cols)
	heights := layout.RowHeights(gridHeight, rows)

	margin := lipgloss.NewStyle().MarginLeft(2)
	out := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(m.panels) {
				break
			}
			p := m.panels[i]
			p.SetSize(widths[c], heights[r])
			m.syncPanelState(p)
			if len(cells) > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, p.View())
		}
		out = append(out, margin.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...)))
	}
	return strings.Join(out, "\n")
}

// syncPanelState pushes the orchestrator's transient view of one panel into
// its renderer: flash flags, countdown seconds, and the animation frame.
func (m Model) syncPanelState(p panels.Panel) {
	name := refresh.PanelName(p.Config().ID)
	flags := m.orch.Feedback(name)
	countdown := 0
	if v, ok := m.orch.Countdown(name); ok {
		countdown = v
	}
	p.SetState(panels.State{
		Running:       flags.Running,
		JustRefreshed: flags.JustRefreshed,
		JustCompleted: flags.JustCompleted,
		Countdown:     countdown,
		Anim:          m.anim,
	})
}

// renderStatusBar draws the hotkey legend under a dim divider.
func (m Model) renderStatusBar(t theme.Theme) string {
	entries := m.keymap.Entries()
	hints := make([]components.KeyHint, 0, len(entries))
	for _, hk := range entries {
		hints = append(hints, components.KeyHint{Key: string(hk.Key), Desc: hk.Label})
	}
	bar := components.RenderHelpBar(components.HelpBarOptions{
		Hints: hints,
		Width: m.width - 4,
	})
	return "  " + styles.Divider(m.width-4, "", t.Surface1) + "\n  " + bar
}
