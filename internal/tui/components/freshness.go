// Package components provides shared building blocks for the dashboard panels.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// IsStale returns true if data is older than 2x the refresh interval.
// Panels without a timed interval (manual refresh only) never go stale.
func IsStale(lastUpdate time.Time, refreshInterval time.Duration) bool {
	if lastUpdate.IsZero() || refreshInterval <= 0 {
		return false
	}
	return time.Since(lastUpdate) > 2*refreshInterval
}

// FormatAge returns a human-readable age string for an elapsed duration.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// RenderAge renders an "updated Xs ago" indicator. The text shifts to the
// warning color once the data goes stale. Returns empty string if lastUpdate
// is zero.
func RenderAge(lastUpdate time.Time, refreshInterval time.Duration) string {
	if lastUpdate.IsZero() {
		return ""
	}

	t := theme.Current()
	textStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	if IsStale(lastUpdate, refreshInterval) {
		textStyle = lipgloss.NewStyle().Foreground(t.Yellow)
	}

	return textStyle.Render(fmt.Sprintf("updated %s ago", FormatAge(time.Since(lastUpdate))))
}

// RenderAgeFooter renders a right-aligned age footer for a panel body.
func RenderAgeFooter(lastUpdate time.Time, refreshInterval time.Duration, width int) string {
	indicator := RenderAge(lastUpdate, refreshInterval)
	if indicator == "" {
		return ""
	}

	indicatorWidth := lipgloss.Width(indicator)
	if indicatorWidth >= width {
		return indicator
	}

	return lipgloss.NewStyle().
		PaddingLeft(width - indicatorWidth).
		Render(indicator)
}

// RenderStaleBadge renders a "STALE" warning badge if data is stale.
// Returns empty string if not stale.
func RenderStaleBadge(lastUpdate time.Time, refreshInterval time.Duration) string {
	if !IsStale(lastUpdate, refreshInterval) {
		return ""
	}

	t := theme.Current()
	return lipgloss.NewStyle().
		Background(t.Yellow).
		Foreground(t.Base).
		Bold(true).
		Padding(0, 1).
		Render("STALE")
}
