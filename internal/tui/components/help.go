package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/tui/layout"
	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

// KeyHint represents a single keybinding hint (e.g., "r" → "refresh all").
type KeyHint struct {
	Key  string // The key to press, e.g., "r", "g", "q"
	Desc string // Brief description, e.g., "refresh all", "quit"
}

// HelpBarOptions configures RenderHelpBar.
type HelpBarOptions struct {
	Hints     []KeyHint // Key hints to display
	Width     int       // Available width (0 = unlimited)
	Separator string    // Separator between hints (default: "  ")
}

// RenderKeyHint renders a single key hint with consistent styling.
func RenderKeyHint(hint KeyHint) string {
	t := theme.Current()

	keyStyle := lipgloss.NewStyle().
		Background(t.Surface0).
		Foreground(t.Text).
		Bold(true).
		Padding(0, 1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Overlay)

	return keyStyle.Render(hint.Key) + " " + descStyle.Render(hint.Desc)
}

// RenderKeyHintCompact renders a minimal key hint without background,
// for narrow widths.
func RenderKeyHintCompact(hint KeyHint) string {
	t := theme.Current()

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Overlay)

	return keyStyle.Render(hint.Key) + " " + descStyle.Render(hint.Desc)
}

// RenderHelpBar renders a horizontal bar of key hints, respecting width
// constraints. Hints are progressively hidden from right-to-left if they
// don't fit, so the most important bindings belong at the front.
func RenderHelpBar(opts HelpBarOptions) string {
	if len(opts.Hints) == 0 {
		return ""
	}

	sep := opts.Separator
	if sep == "" {
		sep = "  "
	}

	compact := layout.TierForWidth(opts.Width) == layout.TierNarrow

	var rendered []string
	for _, h := range opts.Hints {
		if compact {
			rendered = append(rendered, RenderKeyHintCompact(h))
		} else {
			rendered = append(rendered, RenderKeyHint(h))
		}
	}

	if opts.Width <= 0 {
		return strings.Join(rendered, sep)
	}

	// Progressive truncation: drop hints from the right until it fits.
	sepWidth := lipgloss.Width(sep)
	for len(rendered) > 0 {
		total := 0
		for i, r := range rendered {
			total += lipgloss.Width(r)
			if i > 0 {
				total += sepWidth
			}
		}
		if total <= opts.Width {
			break
		}
		rendered = rendered[:len(rendered)-1]
	}

	return strings.Join(rendered, sep)
}
