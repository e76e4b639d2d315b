package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/neochoon/agenthud-sub001/internal/source"
)

func projectFixture() source.ProjectData {
	return source.ProjectData{
		Root:       "/home/dev/agenthud",
		Name:       "agenthud",
		Language:   "Go",
		Files:      42,
		Dirs:       7,
		NewestFile: "internal/refresh/orchestrator.go",
		NewestTime: time.Now().Add(-2 * time.Minute),
	}
}

func TestProjectPanelView(t *testing.T) {
	p := NewProjectPanel(0, "p")
	p.SetSize(70, 18)
	p.SetData(projectFixture(), nil)

	view := p.View()
	for _, want := range []string{"agenthud", "Go", "42 files in 7 dirs", "newest:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProjectPanelLoading(t *testing.T) {
	p := NewProjectPanel(0, "")
	p.SetSize(70, 18)

	if view := p.View(); !strings.Contains(view, "scanning project") {
		t.Error("unfetched panel should show the loading state")
	}
}
