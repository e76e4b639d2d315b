package source

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// CustomData is a custom panel payload. Command or file output is parsed as
// a JSON object of this shape when possible, else treated as plain lines.
type CustomData struct {
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Items    []string          `json:"items"`
	Progress *float64          `json:"progress"` // 0..1 when present
	Stats    map[string]string `json:"stats"`
	Plain    bool              `json:"-"`
}

const maxCustomLines = 50

// CustomFetcher runs command through the shell, or reads sourcePath when no
// command is set. Command wins when both are configured.
func CustomFetcher(command, sourcePath string) refresh.Fetcher {
	return func(ctx context.Context) (any, error) {
		var out string
		switch {
		case command != "":
			var err error
			out, err = runShell(ctx, command)
			if err != nil {
				return nil, err
			}
		case sourcePath != "":
			raw, err := os.ReadFile(sourcePath)
			if err != nil {
				return nil, err
			}
			out = string(raw)
		default:
			return CustomData{Plain: true}, nil
		}
		return parseCustomOutput(out), nil
	}
}

// parseCustomOutput tries the JSON object shape first and falls back to
// newline-delimited text, blank lines dropped.
func parseCustomOutput(out string) CustomData {
	trimmed := strings.TrimSpace(out)
	if strings.HasPrefix(trimmed, "{") {
		var data CustomData
		if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
			return data
		}
	}

	data := CustomData{Plain: true}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		data.Items = append(data.Items, line)
		if len(data.Items) == maxCustomLines {
			break
		}
	}
	return data
}
