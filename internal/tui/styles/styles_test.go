package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#000000", Color{0, 0, 0}},
		{"#ffffff", Color{255, 255, 255}},
		{"#89b4fa", Color{0x89, 0xb4, 0xfa}},
		{"#a6e3a1", Color{0xa6, 0xe3, 0xa1}},
		{"not-a-color", Color{0, 0, 0}},
		{"", Color{0, 0, 0}},
	}

	for _, tt := range tests {
		if got := ParseHex(tt.hex); got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
		}
	}
}

func TestColorToHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#89b4fa", "#f38ba8"} {
		if got := ParseHex(hex).ToHex(); got != hex {
			t.Errorf("round trip %q = %q", hex, got)
		}
	}
}

func TestColorToLipgloss(t *testing.T) {
	c := Color{R: 0x89, G: 0xb4, B: 0xfa}
	if got := c.ToLipgloss(); got != lipgloss.Color("#89b4fa") {
		t.Errorf("ToLipgloss() = %q", got)
	}
}

func TestLerp(t *testing.T) {
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}

	if got := Lerp(black, white, 0); got != black {
		t.Errorf("Lerp at 0 = %+v, want black", got)
	}
	if got := Lerp(black, white, 1); got != white {
		t.Errorf("Lerp at 1 = %+v, want white", got)
	}

	mid := Lerp(black, white, 0.5)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Errorf("Lerp at 0.5 = %+v, want {127 127 127}", mid)
	}
}

func TestGradientText(t *testing.T) {
	got := GradientText("hello", "#ff0000", "#0000ff")
	if !strings.Contains(got, "\x1b[38;2;") {
		t.Error("gradient output should contain truecolor escapes")
	}
	if lipgloss.Width(got) != 5 {
		t.Errorf("visible width = %d, want 5", lipgloss.Width(got))
	}

	// Too few colors passes text through untouched.
	if got := GradientText("plain", "#ff0000"); got != "plain" {
		t.Errorf("single color = %q, want passthrough", got)
	}
	if got := GradientText("", "#ff0000", "#0000ff"); got != "" {
		t.Errorf("empty text = %q, want empty", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
	}{
		{"empty", 0},
		{"half", 0.5},
		{"full", 1},
		{"clamped low", -0.5},
		{"clamped high", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percent, 10, "█", "░", "#ff0000", "#00ff00")
			if w := lipgloss.Width(bar); w != 10 {
				t.Errorf("visible width = %d, want 10", w)
			}
		})
	}
}

func TestGetSpinnerFrame(t *testing.T) {
	frames := []string{"a", "b", "c"}

	if got := GetSpinnerFrame(0, frames); got != "a" {
		t.Errorf("frame 0 = %q", got)
	}
	if got := GetSpinnerFrame(4, frames); got != "b" {
		t.Errorf("frame 4 = %q, want wrap to b", got)
	}
	if got := GetSpinnerFrame(7, nil); got == "" {
		t.Error("nil frames should still return a frame")
	}
}

func TestDivider(t *testing.T) {
	tests := []struct {
		style string
		char  string
	}{
		{"heavy", "━"},
		{"double", "═"},
		{"dotted", "·"},
		{"dashed", "╌"},
		{"", "─"},
	}

	for _, tt := range tests {
		got := Divider(5, tt.style, lipgloss.Color("#89b4fa"))
		if !strings.Contains(got, tt.char) {
			t.Errorf("Divider(%q) missing %q: %q", tt.style, tt.char, got)
		}
		if w := lipgloss.Width(got); w != 5 {
			t.Errorf("Divider(%q) width = %d, want 5", tt.style, w)
		}
	}
}

func TestGradientDivider(t *testing.T) {
	got := GradientDivider(8, "#ff0000", "#0000ff")
	if w := lipgloss.Width(got); w != 8 {
		t.Errorf("width = %d, want 8", w)
	}

	// Defaults kick in with no colors.
	got = GradientDivider(4)
	if w := lipgloss.Width(got); w != 4 {
		t.Errorf("default width = %d, want 4", w)
	}
}

func TestBadge(t *testing.T) {
	got := Badge("STALE", lipgloss.Color("#f9e2af"), lipgloss.Color("#1e1e2e"))
	if !strings.Contains(got, "STALE") {
		t.Errorf("badge missing text: %q", got)
	}
	// Padding adds one cell each side.
	if w := lipgloss.Width(got); w != 7 {
		t.Errorf("width = %d, want 7", w)
	}
}

func TestStatusDot(t *testing.T) {
	static := StatusDot(lipgloss.Color("#a6e3a1"), false, 0)
	if !strings.Contains(static, "●") {
		t.Errorf("static dot = %q", static)
	}

	// Animated dots cycle with the tick.
	a := StatusDot(lipgloss.Color("#a6e3a1"), true, 0)
	b := StatusDot(lipgloss.Color("#a6e3a1"), true, 2)
	if a == b {
		t.Error("animated dot should change across ticks")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth int
		want     string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 10, "this is t…"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.text, tt.maxWidth); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
		}
	}
}

func TestCenterText(t *testing.T) {
	got := CenterText("ab", 6)
	if got != "  ab  " {
		t.Errorf("CenterText = %q", got)
	}
	if got := CenterText("toolong", 3); got != "toolong" {
		t.Errorf("overflow = %q, want passthrough", got)
	}
}

func TestRightAlign(t *testing.T) {
	if got := RightAlign("ab", 5); got != "   ab" {
		t.Errorf("RightAlign = %q", got)
	}
	if got := RightAlign("toolong", 3); got != "toolong" {
		t.Errorf("overflow = %q, want passthrough", got)
	}
}
