// Package icons provides terminal-capability-aware icon sets for the
// dashboard panels.
package icons

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// IconSet holds the glyphs the panels render with.
type IconSet struct {
	// Navigation
	Pointer   string
	ArrowUp   string
	ArrowDown string

	// Status
	Check   string
	Cross   string
	Dot     string
	Circle  string
	Warning string
	Info    string

	// Objects
	Folder   string
	File     string
	Branch   string
	Flask    string
	Terminal string
	Clock    string
	Robot    string

	// Decorations
	Sparkle string

	// Help
	Help string
}

// NerdFonts is the full icon set using Nerd Font symbols
var NerdFonts = IconSet{
	Pointer:   "❯",
	ArrowUp:   "",
	ArrowDown: "",

	Check:   "",
	Cross:   "",
	Dot:     "●",
	Circle:  "○",
	Warning: "",
	Info:    "",

	Folder:   "",
	File:     "",
	Branch:   "",
	Flask:    "",
	Terminal: "",
	Clock:    "",
	Robot:    "󰚩",

	Sparkle: "✦",

	Help: "",
}

// Unicode is a fallback icon set using standard Unicode
var Unicode = IconSet{
	Pointer:   "›",
	ArrowUp:   "↑",
	ArrowDown: "↓",

	Check:   "✓",
	Cross:   "✗",
	Dot:     "•",
	Circle:  "○",
	Warning: "⚠",
	Info:    "ℹ",

	Folder:   "▣",
	File:     "▤",
	Branch:   "⎇",
	Flask:    "⚗",
	Terminal: "▢",
	Clock:    "◷",
	Robot:    "⚙",

	Sparkle: "✦",

	Help: "?",
}

// ASCII is a minimal fallback for terminals without Unicode
var ASCII = IconSet{
	Pointer:   ">",
	ArrowUp:   "^",
	ArrowDown: "v",

	Check:   "[x]",
	Cross:   "[X]",
	Dot:     "*",
	Circle:  "o",
	Warning: "!",
	Info:    "i",

	Folder:   "[D]",
	File:     "[F]",
	Branch:   "[b]",
	Flask:    "[T]",
	Terminal: "[>",
	Clock:    "(t)",
	Robot:    "[R]",

	Sparkle: "*",

	Help: "?",
}

// WithFallback fills empty fields from the fallback set.
func (i IconSet) WithFallback(fallback IconSet) IconSet {
	if reflect.DeepEqual(i, fallback) {
		return i
	}

	out := i
	dst := reflect.ValueOf(&out).Elem()
	fb := reflect.ValueOf(fallback)

	for idx := 0; idx < dst.NumField(); idx++ {
		f := dst.Field(idx)
		if f.Kind() != reflect.String {
			continue
		}
		if f.String() != "" {
			continue
		}
		f.SetString(fb.Field(idx).String())
	}

	return out
}

// HasNerdFonts detects if the terminal likely supports Nerd Fonts
func HasNerdFonts() bool {
	// Explicit user preference
	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}
	if os.Getenv("NERD_FONTS") == "0" {
		return false
	}

	// Powerlevel10k config is a strong indicator
	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".p10k.zsh")); err == nil {
		return true
	}

	// Terminal programs known to support Nerd Fonts well
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Alacritty", "kitty", "Hyper", "vscode":
		return true
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("WEZTERM_PANE") != "" {
		return true
	}

	return false
}

// HasUnicode detects if the terminal supports Unicode
func HasUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	if strings.Contains(strings.ToLower(lang), "utf") ||
		strings.Contains(strings.ToLower(lcAll), "utf") {
		return true
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "xterm") ||
		strings.Contains(term, "256color") ||
		strings.Contains(term, "screen") ||
		strings.Contains(term, "tmux") {
		return true
	}

	return true // Default to Unicode in modern era
}

// Detect returns the appropriate icon set for the current terminal
func Detect() IconSet {
	switch os.Getenv("AGENTHUD_ICONS") {
	case "nerd", "nerdfonts":
		return NerdFonts.WithFallback(Unicode).WithFallback(ASCII)
	case "unicode":
		return Unicode.WithFallback(ASCII)
	case "ascii":
		return ASCII
	case "auto":
		if HasNerdFonts() {
			return NerdFonts.WithFallback(Unicode).WithFallback(ASCII)
		}
		if HasUnicode() {
			return Unicode.WithFallback(ASCII)
		}
	}

	// Legacy: NERD_FONTS env var (explicit opt-in)
	if os.Getenv("NERD_FONTS") == "1" {
		return NerdFonts.WithFallback(Unicode).WithFallback(ASCII)
	}

	// Default to ASCII to avoid width drift issues.
	return ASCII
}

// Default is the auto-detected icon set
var Default = Detect()

// Current returns the currently active icon set
func Current() IconSet {
	return Default
}

// SetDefault allows overriding the default icon set
func SetDefault(icons IconSet) {
	Default = icons
}
