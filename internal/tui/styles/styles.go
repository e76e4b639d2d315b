// Package styles provides rendering helpers shared by the dashboard panels.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neochoon/agenthud-sub001/internal/tui/theme"
)

func defaultSurface1() lipgloss.Color {
	return theme.Current().Surface1
}

// Color represents an RGB color for gradient calculations
type Color struct {
	R, G, B int
}

// ParseHex converts a hex color string to Color
func ParseHex(hex string) Color {
	var r, g, b int
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	}
	return Color{R: r, G: g, B: b}
}

// ToHex converts Color to hex string
func (c Color) ToHex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ToLipgloss converts to lipgloss.Color
func (c Color) ToLipgloss() lipgloss.Color {
	return lipgloss.Color(c.ToHex())
}

// Lerp interpolates between two colors
func Lerp(c1, c2 Color, t float64) Color {
	return Color{
		R: int(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: int(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: int(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
	}
}

// GradientText applies a horizontal gradient to text
func GradientText(text string, colors ...string) string {
	if len(colors) < 2 || len(text) == 0 {
		return text
	}

	runes := []rune(text)
	n := len(runes)

	parsedColors := make([]Color, len(colors))
	for i, c := range colors {
		parsedColors[i] = ParseHex(c)
	}

	var result strings.Builder
	segments := len(parsedColors) - 1

	for i, r := range runes {
		var pos float64
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}

		segmentPos := pos * float64(segments)
		segmentIdx := int(segmentPos)
		if segmentIdx >= segments {
			segmentIdx = segments - 1
		}
		localPos := segmentPos - float64(segmentIdx)

		c := Lerp(parsedColors[segmentIdx], parsedColors[segmentIdx+1], localPos)
		result.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm%c\x1b[0m", c.R, c.G, c.B, r))
	}

	return result.String()
}

// ProgressBar creates a gradient progress bar
func ProgressBar(percent float64, width int, filled, empty string, colors ...string) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}

	filledWidth := int(percent * float64(width))
	emptyWidth := width - filledWidth

	if len(colors) < 2 {
		t := theme.Current()
		colors = []string{string(t.Blue), string(t.Green)}
	}

	filledStr := GradientText(strings.Repeat(filled, filledWidth), colors...)
	emptyStr := lipgloss.NewStyle().Foreground(defaultSurface1()).Render(strings.Repeat(empty, emptyWidth))

	return filledStr + emptyStr
}

// SpinnerFrames for the running-fetch indicator
var SpinnerFrames = []string{
	"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
}

// GetSpinnerFrame returns the spinner frame for the given tick
func GetSpinnerFrame(tick int, frames []string) string {
	if len(frames) == 0 {
		return "⠋"
	}
	return frames[tick%len(frames)]
}

// Divider creates a styled divider line
func Divider(width int, style string, color lipgloss.Color) string {
	var char string
	switch style {
	case "heavy":
		char = "━"
	case "double":
		char = "═"
	case "dotted":
		char = "·"
	case "dashed":
		char = "╌"
	default:
		char = "─"
	}

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(char, width))
}

// GradientDivider creates a gradient divider
func GradientDivider(width int, colors ...string) string {
	if len(colors) < 2 {
		colors = []string{"#89b4fa", "#cba6f7"}
	}
	return GradientText(strings.Repeat("─", width), colors...)
}

// Badge creates a styled badge/tag
func Badge(text string, bg, fg lipgloss.Color) string {
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Render(text)
}

// StatusDot renders a colored status indicator
func StatusDot(color lipgloss.Color, animated bool, tick int) string {
	if animated {
		dots := []string{"○", "◔", "◑", "◕", "●", "◕", "◑", "◔"}
		return lipgloss.NewStyle().Foreground(color).Render(dots[tick%len(dots)])
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// Truncate truncates text to max width with ellipsis
func Truncate(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxWidth-1 {
		return text
	}
	return string(runes[:maxWidth-1]) + "…"
}

// CenterText centers text within a given width
func CenterText(text string, width int) string {
	visLen := lipgloss.Width(text)
	if visLen >= width {
		return text
	}
	leftPad := (width - visLen) / 2
	rightPad := width - visLen - leftPad
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// RightAlign right-aligns text within a given width
func RightAlign(text string, width int) string {
	visLen := lipgloss.Width(text)
	if visLen >= width {
		return text
	}
	return strings.Repeat(" ", width-visLen) + text
}
