package refresh

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func manualPanels(names ...string) []ManualPanel {
	out := make([]ManualPanel, 0, len(names))
	for _, n := range names {
		out = append(out, ManualPanel{Name: PanelName(n), Label: n})
	}
	return out
}

func TestAllocateFirstFreeCharacter(t *testing.T) {
	km := Allocate(manualPanels("git", "deploy", "tests"), nil, nil)

	entries := km.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries (3 panels + r + q), got %d", len(entries))
	}

	wantKeys := []rune{'g', 'd', 't', 'r', 'q'}
	for i, want := range wantKeys {
		if entries[i].Key != want {
			t.Errorf("entries[%d].Key = %q, want %q", i, entries[i].Key, want)
		}
	}
	if entries[3].Label != "refresh all" || entries[4].Label != "quit" {
		t.Errorf("fixed entries = %q, %q, want refresh all then quit", entries[3].Label, entries[4].Label)
	}
}

func TestAllocateSkipsReservedAndNonLetters(t *testing.T) {
	// 'r' is reserved and '-' is not assignable, so "r-task" lands on 't'.
	km := Allocate(manualPanels("r-task"), nil, nil)

	entries := km.Entries()
	if entries[0].Key != 't' {
		t.Errorf("key for r-task = %q, want 't'", entries[0].Key)
	}
}

func TestAllocateReservedForcesLaterCharacter(t *testing.T) {
	// "run": 'r' reserved, 'u' free.
	km := Allocate(manualPanels("run"), nil, nil)

	if got := km.Entries()[0].Key; got != 'u' {
		t.Errorf("key for run = %q, want 'u'", got)
	}
}

func TestAllocateExhaustedNameGetsNoKey(t *testing.T) {
	// Every character of "rq" is reserved; the panel silently gets nothing.
	km := Allocate(manualPanels("rq"), nil, nil)

	entries := km.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected only the fixed r and q entries, got %d", len(entries))
	}
	if _, ok := km.ForPanel("rq"); ok {
		t.Error("ForPanel(rq) returned a hotkey for an unassignable panel")
	}
}

func TestAllocateCollisionBetweenPanels(t *testing.T) {
	// Both names start with 'g'; the second falls through to its next
	// letter.
	km := Allocate(manualPanels("git", "go-vet"), nil, nil)

	entries := km.Entries()
	if entries[0].Key != 'g' || entries[1].Key != 'o' {
		t.Errorf("keys = %q, %q, want 'g' then 'o'", entries[0].Key, entries[1].Key)
	}
}

func TestKeymapHandle(t *testing.T) {
	var fired []string
	action := func(name string) Action {
		return func() tea.Cmd {
			fired = append(fired, name)
			return nil
		}
	}

	panels := []ManualPanel{
		{Name: "git", Label: "git", Action: action("git")},
		{Name: "tests", Label: "tests", Action: action("tests")},
	}
	km := Allocate(panels, action("refresh-all"), action("quit"))

	if _, ok := km.Handle(keyMsg('g')); !ok {
		t.Fatal("Handle(g) did not match")
	}
	if _, ok := km.Handle(keyMsg('r')); !ok {
		t.Fatal("Handle(r) did not match")
	}
	if _, ok := km.Handle(keyMsg('x')); ok {
		t.Error("Handle(x) matched an unassigned key")
	}

	if len(fired) != 2 || fired[0] != "git" || fired[1] != "refresh-all" {
		t.Errorf("fired = %v, want [git refresh-all], each exactly once", fired)
	}
}

func TestKeymapForPanel(t *testing.T) {
	km := Allocate(manualPanels("git", "tests"), nil, nil)

	hk, ok := km.ForPanel("tests")
	if !ok || hk.Key != 't' {
		t.Errorf("ForPanel(tests) = %+v,%v, want key 't'", hk, ok)
	}
	if _, ok := km.ForPanel("git-status"); ok {
		t.Error("ForPanel matched a panel that was never allocated")
	}
}
