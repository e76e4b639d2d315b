// Package config loads agenthud configuration: a YAML or TOML file merged
// over built-in defaults and resolved into per-panel refresh policies.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/neochoon/agenthud-sub001/internal/notify"
	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// ErrNoConfig indicates an explicitly requested config file does not exist.
var ErrNoConfig = errors.New("config file not found")

// Config is the root configuration.
type Config struct {
	Theme       string `yaml:"theme" toml:"theme"`               // auto, dark, light
	LogLevel    string `yaml:"log_level" toml:"log_level"`       // debug, info, warn, error
	LogFile     string `yaml:"log_file" toml:"log_file"`         // empty means the default state-dir file
	ResultsFile string `yaml:"results_file" toml:"results_file"` // test results file (canonical JSON, runner JSON, or JUnit XML)
	ClaudeLog   string `yaml:"claude_log" toml:"claude_log"`     // agent activity JSONL; empty means auto-discover

	Panels        PanelsConfig        `yaml:"panels" toml:"panels"`
	CustomPanels  []CustomPanelConfig `yaml:"custom_panels" toml:"custom_panels"`
	Notifications notify.Config       `yaml:"notifications" toml:"notifications"`

	// Path records where the config was loaded from; empty when running
	// on pure defaults.
	Path string `yaml:"-" toml:"-"`

	// Warnings collects non-fatal config problems (bad intervals, unusable
	// custom panels). A default is substituted for each so every panel
	// still runs.
	Warnings []string `yaml:"-" toml:"-"`
}

// PanelsConfig holds the five built-in panels.
type PanelsConfig struct {
	Project       PanelConfig `yaml:"project" toml:"project"`
	Git           PanelConfig `yaml:"git" toml:"git"`
	Tests         PanelConfig `yaml:"tests" toml:"tests"`
	Claude        PanelConfig `yaml:"claude" toml:"claude"`
	OtherSessions PanelConfig `yaml:"other_sessions" toml:"other_sessions"`
}

// PanelConfig controls one built-in panel.
type PanelConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Interval string `yaml:"interval" toml:"interval"` // "30s", "5m", "1h", or "manual"

	every time.Duration // resolved from Interval; zero means manual
}

// Every returns the resolved refresh interval; zero means manual.
func (p PanelConfig) Every() time.Duration { return p.every }

// CustomPanelConfig declares a user-defined panel backed by a shell command
// or a file. Command wins when both are set.
type CustomPanelConfig struct {
	Name     string `yaml:"name" toml:"name"`
	Title    string `yaml:"title" toml:"title"`
	Enabled  *bool  `yaml:"enabled" toml:"enabled"` // nil means enabled
	Interval string `yaml:"interval" toml:"interval"`
	Command  string `yaml:"command" toml:"command"`
	Source   string `yaml:"source" toml:"source"`

	every time.Duration
}

// Every returns the resolved refresh interval; zero means manual.
func (p CustomPanelConfig) Every() time.Duration { return p.every }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:       "auto",
		LogLevel:    "info",
		ResultsFile: filepath.Join(".agenthud", "results.json"),
		Panels: PanelsConfig{
			Project:       PanelConfig{Enabled: true, Interval: "manual"},
			Git:           PanelConfig{Enabled: true, Interval: "10s"},
			Tests:         PanelConfig{Enabled: true, Interval: "manual"},
			Claude:        PanelConfig{Enabled: true, Interval: "5s"},
			OtherSessions: PanelConfig{Enabled: true, Interval: "30s"},
		},
		Notifications: notify.DefaultConfig(),
	}
}

// DefaultPath returns the user-level config file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agenthud", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agenthud", "config.yaml")
}

// ProjectPath returns the project-level config file name, checked before the
// user-level file.
func ProjectPath() string {
	return "agenthud.yaml"
}

// Load reads configuration from a file, merged over Default.
//
// With an empty path the project files are tried first (agenthud.yaml, then
// agenthud.toml), then the user-level file; when none exist the defaults are
// returned without error. An explicit path that cannot be read is an error
// (ErrNoConfig when missing). Files ending in .toml are decoded as TOML,
// everything else as YAML.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		for _, candidate := range []string{ProjectPath(), "agenthud.toml", DefaultPath()} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Default()
	if path == "" {
		cfg.normalize()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit && os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	cfg.normalize()
	return cfg, nil
}

// normalize resolves interval strings, substitutes defaults for invalid
// values, and drops unusable custom panels. Problems become Warnings, never
// errors.
func (c *Config) normalize() {
	c.Warnings = nil
	def := Default()

	builtins := []struct {
		name string
		pc   *PanelConfig
		dflt string
	}{
		{"project", &c.Panels.Project, def.Panels.Project.Interval},
		{"git", &c.Panels.Git, def.Panels.Git.Interval},
		{"tests", &c.Panels.Tests, def.Panels.Tests.Interval},
		{"claude", &c.Panels.Claude, def.Panels.Claude.Interval},
		{"other_sessions", &c.Panels.OtherSessions, def.Panels.OtherSessions.Interval},
	}
	for _, b := range builtins {
		if b.pc.Interval == "" {
			b.pc.Interval = b.dflt
		}
		every, err := ParseInterval(b.pc.Interval)
		if err != nil {
			c.warnf("panels.%s: %v, using %s", b.name, err, b.dflt)
			b.pc.Interval = b.dflt
			every, _ = ParseInterval(b.dflt)
		}
		b.pc.every = every
	}

	seen := map[string]bool{
		"project": true, "git": true, "tests": true,
		"claude": true, "other_sessions": true,
	}
	kept := c.CustomPanels[:0]
	for _, cp := range c.CustomPanels {
		if cp.Name == "" {
			c.warnf("custom panel without a name skipped")
			continue
		}
		if seen[cp.Name] {
			c.warnf("custom panel %q: duplicate name, skipped", cp.Name)
			continue
		}
		if cp.Command == "" && cp.Source == "" {
			c.warnf("custom panel %q: needs command or source, skipped", cp.Name)
			continue
		}
		if cp.Title == "" {
			cp.Title = cp.Name
		}
		if cp.Enabled == nil {
			enabled := true
			cp.Enabled = &enabled
		}
		if cp.Interval == "" {
			cp.Interval = "manual"
		}
		every, err := ParseInterval(cp.Interval)
		if err != nil {
			c.warnf("custom panel %q: %v, using manual", cp.Name, err)
			cp.Interval = "manual"
			every = 0
		}
		cp.every = every
		seen[cp.Name] = true
		kept = append(kept, cp)
	}
	c.CustomPanels = kept

	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ResultsFile == "" {
		c.ResultsFile = def.ResultsFile
	}
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Policies resolves the configured panels into refresh policies in render
// order: the built-ins first, then custom panels as listed.
func (c *Config) Policies() []refresh.Policy {
	ps := []refresh.Policy{
		{Name: refresh.PanelProject, Label: "Project", Enabled: c.Panels.Project.Enabled, Interval: c.Panels.Project.every},
		{Name: refresh.PanelGit, Label: "Git", Enabled: c.Panels.Git.Enabled, Interval: c.Panels.Git.every},
		{Name: refresh.PanelTests, Label: "Tests", Enabled: c.Panels.Tests.Enabled, Interval: c.Panels.Tests.every},
		{Name: refresh.PanelClaude, Label: "Claude", Enabled: c.Panels.Claude.Enabled, Interval: c.Panels.Claude.every},
		{Name: refresh.PanelOtherSessions, Label: "Other Sessions", Enabled: c.Panels.OtherSessions.Enabled, Interval: c.Panels.OtherSessions.every},
	}
	for _, cp := range c.CustomPanels {
		ps = append(ps, refresh.Policy{
			Name:     refresh.PanelName(cp.Name),
			Label:    cp.Title,
			Enabled:  *cp.Enabled,
			Interval: cp.every,
		})
	}
	return ps
}

// scaffold is the commented starter config written by "agenthud init".
const scaffold = `# agenthud configuration.
# Intervals: "30s", "5m", "1h", or "manual" (hotkey and refresh-all only).

theme: auto       # auto, dark, light
log_level: info   # debug, info, warn, error
results_file: .agenthud/results.json
# claude_log: path to an agent activity JSONL (auto-discovered when unset)

panels:
  project:
    enabled: true
    interval: manual
  git:
    enabled: true
    interval: 10s
  tests:
    enabled: true
    interval: manual  # the results watcher refreshes this panel on change
  claude:
    enabled: true
    interval: 5s
  other_sessions:
    enabled: true
    interval: 30s

# custom_panels:
#   - name: deploy
#     title: Deploy
#     interval: 1m
#     command: ./scripts/deploy-status.sh
#   - name: notes
#     source: NOTES.md

notifications:
  enabled: true
  events: [tests.failures, tests.recovered]
  cooldown_seconds: 30
  desktop:
    enabled: true
    title: agenthud
`

// WriteDefault writes the starter config to path ("" means the project
// file). Refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		path = ProjectPath()
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(scaffold), 0644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
