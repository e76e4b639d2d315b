package source

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// ClaudeData is the claude panel payload: a view over the tail of the agent
// activity log.
type ClaudeData struct {
	Path      string
	Found     bool
	State     string // working, waiting, idle
	LastEvent string
	LastTool  string
	LastTime  time.Time
	Recent    []string // oldest first
}

// claudeEvent is one JSONL line of the activity log. Unknown fields are
// ignored.
type claudeEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Tool      string `json:"tool"`
	Message   string `json:"message"`
}

const (
	tailBytes    = 64 * 1024
	recentEvents = 5
	idleAfter    = 2 * time.Minute
)

// ClaudeFetcher tails the agent activity log at path; with an empty path it
// looks for the newest log under the per-project agent state directory.
func ClaudeFetcher(path string) refresh.Fetcher {
	return func(ctx context.Context) (any, error) {
		logPath := path
		if logPath == "" {
			logPath = discoverClaudeLog()
		}
		if logPath == "" {
			return ClaudeData{}, nil
		}

		data := ClaudeData{Path: logPath}
		events, err := tailEvents(logPath, recentEvents)
		if os.IsNotExist(err) {
			return data, nil
		}
		if err != nil {
			return nil, err
		}

		data.Found = true
		if len(events) == 0 {
			data.State = "idle"
			return data, nil
		}

		last := events[len(events)-1]
		data.LastEvent = eventSummary(last)
		data.LastTool = last.Tool
		data.LastTime = parseEventTime(last.Timestamp)
		data.State = claudeState(last, data.LastTime)
		for _, e := range events {
			data.Recent = append(data.Recent, eventSummary(e))
		}
		return data, nil
	}
}

// discoverClaudeLog finds the newest .jsonl under the agent's per-project
// state directory, named after the working directory with path separators
// flattened to dashes.
func discoverClaudeLog() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	slug := strings.NewReplacer("/", "-", ".", "-").Replace(cwd)
	dir := filepath.Join(home, ".claude", "projects", slug)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var newest string
	var newestTime time.Time
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(newestTime) {
			newestTime = info.ModTime()
			newest = filepath.Join(dir, e.Name())
		}
	}
	return newest
}

// tailEvents reads the last n parseable events from the log. Only the final
// chunk of a large file is read; junk lines are tolerated.
func tailEvents(path string, n int) ([]claudeEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	var offset int64
	if info.Size() > tailBytes {
		offset = info.Size() - tailBytes
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(raw), "\n")
	if offset > 0 && len(lines) > 0 {
		lines = lines[1:] // the seek likely landed mid-line
	}

	var events []claudeEvent
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e claudeEvent
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

func claudeState(last claudeEvent, at time.Time) string {
	switch last.Type {
	case "question", "permission_request", "awaiting_input":
		return "waiting"
	}
	if !at.IsZero() && time.Since(at) < idleAfter {
		return "working"
	}
	return "idle"
}

func eventSummary(e claudeEvent) string {
	parts := []string{e.Type}
	if e.Tool != "" {
		parts = append(parts, e.Tool)
	} else if e.Message != "" {
		parts = append(parts, runewidth.Truncate(e.Message, 60, "…"))
	}
	if ts := parseEventTime(e.Timestamp); !ts.IsZero() {
		return ts.Local().Format("15:04:05") + " " + strings.Join(parts, " ")
	}
	return strings.Join(parts, " ")
}

func parseEventTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
