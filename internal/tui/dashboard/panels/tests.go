package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/source"
	"github.com/neochoon/agenthud-sub001/internal/testreport"
	"github.com/neochoon/agenthud-sub001/internal/tui/components"
	"github.com/neochoon/agenthud-sub001/internal/tui/icons"
	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/tui/styles"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// TestsPanel shows the latest test results: pass/fail counts, a pass-rate
// bar, the failure list with new failures marked, and warnings when the
// report is malformed or recorded against an older commit.
type TestsPanel struct {
	PanelBase
	data source.TestsData
}

func testsConfig(interval time.Duration, hotkey string) PanelConfig {
	return PanelConfig{
		ID:              "tests",
		Title:           "Tests",
		Icon:            icons.Current().Flask,
		RefreshInterval: interval,
		Hotkey:          hotkey,
		MinHeight:       9,
	}
}

// NewTestsPanel creates the tests panel.
func NewTestsPanel(interval time.Duration, hotkey string) *TestsPanel {
	return &TestsPanel{PanelBase: NewPanelBase(testsConfig(interval, hotkey))}
}

// SetData updates the panel data.
func (p *TestsPanel) SetData(data source.TestsData, err error) {
	if err == nil {
		p.data = data
	}
	p.recordResult(err)
}

// View renders the panel.
func (p *TestsPanel) View() string {
	t := theme.Current()
	ic := icons.Current()
	w := p.bodyWidth()

	if p.LastUpdate().IsZero() && p.Err() == nil {
		return p.frame(components.LoadingState("reading test results…", w))
	}
	if !p.data.Found && p.Err() == nil {
		hint := ""
		if p.data.Path != "" {
			hint = "watching " + p.data.Path
		}
		return p.frame(components.RenderState(components.StateOptions{
			Kind:    components.StateEmpty,
			Message: "no test results yet",
			Hint:    hint,
			Width:   w,
		}))
	}

	var body strings.Builder
	sum := p.data.Results.Summary

	if p.data.Malformed {
		warn := ic.Warning + " malformed report, counts normalized"
		body.WriteString(lipgloss.NewStyle().Foreground(t.Yellow).Render(layout.Truncate(warn, w)) + "\n")
	}
	if p.data.Outdated {
		note := "results from an older commit"
		body.WriteString(lipgloss.NewStyle().Foreground(t.Peach).Render(note) + "\n")
	}

	counts := []string{
		lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(fmt.Sprintf("%s %d passed", ic.Check, sum.Passed)),
	}
	if sum.Failed > 0 {
		counts = append(counts, lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render(fmt.Sprintf("%s %d failed", ic.Cross, sum.Failed)))
	}
	if sum.Skipped > 0 {
		counts = append(counts, lipgloss.NewStyle().Foreground(t.Yellow).Render(fmt.Sprintf("%d skipped", sum.Skipped)))
	}
	body.WriteString(strings.Join(counts, "  ") + "\n")

	if total := sum.Total(); total > 0 {
		rate := float64(sum.Passed) / float64(total)
		barColors := []string{string(t.Green), string(t.Teal)}
		if sum.Failed > 0 {
			barColors = []string{string(t.Red), string(t.Peach)}
		}
		body.WriteString(styles.ProgressBar(rate, w, "█", "░", barColors...) + "\n")
	}

	meta := metaLine(p.data.Results)
	if meta != "" {
		body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(meta) + "\n")
	}

	switch {
	case sum.AllPassed() && sum.Total() > 0:
		ok := fmt.Sprintf("%s all %d tests passed", ic.Check, sum.Total())
		body.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render(ok) + "\n")
		if fixed := len(p.data.Delta.Fixed); fixed > 0 {
			body.WriteString(lipgloss.NewStyle().Foreground(t.Teal).Render(fmt.Sprintf("%d fixed since last run", fixed)) + "\n")
		}
	case len(sum.Failures) > 0:
		body.WriteString(styles.Divider(w, "", t.Surface1) + "\n")
		body.WriteString(p.renderFailures(w))
	}

	return p.frame(body.String())
}

// renderFailures lists failing tests, badging the ones that appeared in the
// latest run.
func (p *TestsPanel) renderFailures(w int) string {
	t := theme.Current()
	ic := icons.Current()

	newSet := make(map[testreport.Failure]bool, len(p.data.Delta.New))
	for _, f := range p.data.Delta.New {
		newSet[f] = true
	}

	avail := p.Height() - 11
	if avail < 1 {
		avail = 1
	}

	var body strings.Builder
	shown := 0
	for _, f := range p.data.Results.Failures {
		if shown >= avail {
			more := fmt.Sprintf("…and %d more failures", len(p.data.Results.Failures)-shown)
			body.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Render(more) + "\n")
			break
		}
		line := lipgloss.NewStyle().Foreground(t.Red).Render(ic.Cross) + " "
		max := w - 2
		if newSet[f] {
			badge := styles.Badge("new", t.Red, t.Base)
			max -= lipgloss.Width(badge) + 1
			line += lipgloss.NewStyle().Foreground(t.Text).Render(layout.Truncate(f.Name, max)) + " " + badge
		} else {
			line += lipgloss.NewStyle().Foreground(t.Subtext).Render(layout.Truncate(f.Name, max))
		}
		body.WriteString(line + "\n")
		shown++
	}
	return body.String()
}

// metaLine formats the commit hash and report age, e.g. "abc1234 • 3m ago".
func metaLine(r testreport.Results) string {
	var parts []string
	if r.Hash != "" {
		hash := r.Hash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		parts = append(parts, hash)
	}
	if age, ok := r.Age(); ok {
		parts = append(parts, components.FormatAge(age)+" ago")
	}
	return strings.Join(parts, " • ")
}
