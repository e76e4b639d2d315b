package theme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// overrideFile mirrors Theme in TOML form. Every key is optional; values are
// anything lipgloss accepts (hex like "#f38ba8" or an ANSI index like "9").
type overrideFile struct {
	Base     string `toml:"base"`
	Mantle   string `toml:"mantle"`
	Surface0 string `toml:"surface0"`
	Surface1 string `toml:"surface1"`
	Surface2 string `toml:"surface2"`

	Text    string `toml:"text"`
	Subtext string `toml:"subtext"`
	Overlay string `toml:"overlay"`

	Pink     string `toml:"pink"`
	Mauve    string `toml:"mauve"`
	Red      string `toml:"red"`
	Peach    string `toml:"peach"`
	Yellow   string `toml:"yellow"`
	Green    string `toml:"green"`
	Teal     string `toml:"teal"`
	Sky      string `toml:"sky"`
	Blue     string `toml:"blue"`
	Lavender string `toml:"lavender"`

	Primary string `toml:"primary"`
	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Error   string `toml:"error"`
	Info    string `toml:"info"`

	Agent string `toml:"agent"`
}

// OverridePath returns the user theme file location:
// $XDG_CONFIG_HOME/agenthud/theme.toml, else ~/.config/agenthud/theme.toml.
func OverridePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agenthud", "theme.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "agenthud", "theme.toml")
}

// ApplyFile overlays the TOML theme file at path onto t. A missing file is
// not an error; a malformed one is.
func ApplyFile(t Theme, path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}

	var o overrideFile
	if err := toml.Unmarshal(data, &o); err != nil {
		return t, fmt.Errorf("parsing %s: %w", path, err)
	}

	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}

	set(&t.Base, o.Base)
	set(&t.Mantle, o.Mantle)
	set(&t.Surface0, o.Surface0)
	set(&t.Surface1, o.Surface1)
	set(&t.Surface2, o.Surface2)

	set(&t.Text, o.Text)
	set(&t.Subtext, o.Subtext)
	set(&t.Overlay, o.Overlay)

	set(&t.Pink, o.Pink)
	set(&t.Mauve, o.Mauve)
	set(&t.Red, o.Red)
	set(&t.Peach, o.Peach)
	set(&t.Yellow, o.Yellow)
	set(&t.Green, o.Green)
	set(&t.Teal, o.Teal)
	set(&t.Sky, o.Sky)
	set(&t.Blue, o.Blue)
	set(&t.Lavender, o.Lavender)

	set(&t.Primary, o.Primary)
	set(&t.Success, o.Success)
	set(&t.Warning, o.Warning)
	set(&t.Error, o.Error)
	set(&t.Info, o.Info)

	set(&t.Agent, o.Agent)

	return t, nil
}

// Load resolves a named palette and applies the user override file on top.
// NO_COLOR wins over both; a malformed override file is logged and skipped.
func Load(name string) Theme {
	t := FromName(name)
	if NoColorEnabled() {
		return t
	}
	path := OverridePath()
	if path == "" {
		return t
	}
	applied, err := ApplyFile(t, path)
	if err != nil {
		slog.Warn("ignoring theme override", "path", path, "error", err)
		return t
	}
	return applied
}
