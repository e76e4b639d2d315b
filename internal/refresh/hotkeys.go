package refresh

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Reserved keys: q always quits, r always refreshes everything. Neither is
// ever assignable to a panel.
const (
	KeyQuit       = 'q'
	KeyRefreshAll = 'r'
)

// Action produces the command to run when a hotkey fires.
type Action func() tea.Cmd

// Hotkey binds one lowercase character to a trigger. Panel is empty for the
// fixed refresh-all and quit entries.
type Hotkey struct {
	Key     rune
	Label   string
	Panel   PanelName
	Action  Action
	Binding key.Binding
}

// ManualPanel is a hotkey candidate: an enabled panel with no interval.
type ManualPanel struct {
	Name   PanelName
	Label  string
	Action Action
}

// Keymap holds allocated hotkeys in legend order: panel entries first in
// panel-list order, then refresh-all, then quit.
type Keymap struct {
	entries []Hotkey
}

// Allocate assigns each manual panel the first character of its name
// (scanned lowercased, a-z only) that is not already taken; q and r are
// taken from the start. A panel whose name offers no free character silently
// gets no hotkey and stays reachable through refresh-all.
func Allocate(panels []ManualPanel, refreshAll, quit Action) *Keymap {
	used := map[rune]bool{KeyQuit: true, KeyRefreshAll: true}
	km := &Keymap{}
	for _, p := range panels {
		r, ok := pickKey(string(p.Name), used)
		if !ok {
			continue
		}
		used[r] = true
		hk := newHotkey(r, p.Label, p.Action)
		hk.Panel = p.Name
		km.entries = append(km.entries, hk)
	}
	km.entries = append(km.entries,
		newHotkey(KeyRefreshAll, "refresh all", refreshAll),
		newHotkey(KeyQuit, "quit", quit),
	)
	return km
}

func pickKey(name string, used map[rune]bool) (rune, bool) {
	for _, r := range strings.ToLower(name) {
		if r < 'a' || r > 'z' || used[r] {
			continue
		}
		return r, true
	}
	return 0, false
}

func newHotkey(r rune, label string, action Action) Hotkey {
	ks := string(r)
	return Hotkey{
		Key:    r,
		Label:  label,
		Action: action,
		Binding: key.NewBinding(
			key.WithKeys(ks),
			key.WithHelp(ks, label),
		),
	}
}

// Handle dispatches a key message to at most one binding; the bool reports
// whether anything matched. Unmatched input is simply ignored by callers.
func (k *Keymap) Handle(msg tea.KeyMsg) (tea.Cmd, bool) {
	for _, hk := range k.entries {
		if key.Matches(msg, hk.Binding) {
			if hk.Action == nil {
				return nil, true
			}
			return hk.Action(), true
		}
	}
	return nil, false
}

// Entries returns the hotkeys in legend order.
func (k *Keymap) Entries() []Hotkey {
	return k.entries
}

// ForPanel returns the hotkey allocated to a panel, if any. Rendering uses
// it to badge manual panel titles with their trigger key.
func (k *Keymap) ForPanel(name PanelName) (Hotkey, bool) {
	for _, hk := range k.entries {
		if hk.Panel == name {
			return hk, true
		}
	}
	return Hotkey{}, false
}
