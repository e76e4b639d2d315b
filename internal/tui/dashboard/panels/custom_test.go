package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/neochoon/agenthud-sub001/internal/source"
)

func TestCustomPanelStructured(t *testing.T) {
	progress := 0.6
	p := NewCustomPanel("deploy", "Deploy", time.Minute, "")
	p.SetSize(70, 18)
	p.SetData(source.CustomData{
		Summary:  "staging rollout",
		Items:    []string{"api: done", "worker: in progress"},
		Progress: &progress,
		Stats:    map[string]string{"region": "eu-west", "version": "v1.4.2"},
	}, nil)

	view := p.View()
	wants := []string{
		"staging rollout",
		"60%",
		"api: done", "worker: in progress",
		"region", "eu-west", "version", "v1.4.2",
	}
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCustomPanelPlainText(t *testing.T) {
	p := NewCustomPanel("notes", "Notes", 0, "n")
	p.SetSize(70, 14)
	p.SetData(source.CustomData{
		Summary: "remember to rotate the API key\nand bump the deadline",
		Plain:   true,
	}, nil)

	view := p.View()
	if !strings.Contains(view, "rotate the API key") {
		t.Error("plain payload should render as-is")
	}
	if !strings.Contains(view, "bump the deadline") {
		t.Error("plain payload should keep its lines")
	}
}

func TestCustomPanelTitleOverride(t *testing.T) {
	p := NewCustomPanel("deploy", "Deploy", time.Minute, "")
	p.SetSize(70, 14)
	p.SetData(source.CustomData{Title: "Deploy: staging", Summary: "ok"}, nil)

	if view := p.View(); !strings.Contains(view, "Deploy: staging") {
		t.Error("payload title should override the configured title")
	}
}
