// Package source provides the data fetchers behind each dashboard panel.
// Every fetcher takes a context and returns its panel's typed data; errors
// are carried back to the panel boundary, never fatal to the dashboard.
package source

import (
	"github.com/neochoon/agenthud-sub001/internal/config"
	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// Fetchers builds the fetcher map for the configured panels. The git
// fetcher's HEAD lookup is shared with the tests fetcher so outdated
// results can be flagged against the current commit.
func Fetchers(cfg *config.Config) map[refresh.PanelName]refresh.Fetcher {
	git := NewGitFetcher(".")
	tests := NewTestsFetcher(cfg.ResultsFile, git.Head)

	m := map[refresh.PanelName]refresh.Fetcher{
		refresh.PanelProject:       ProjectFetcher("."),
		refresh.PanelGit:           git.Fetch,
		refresh.PanelTests:         tests.Fetch,
		refresh.PanelClaude:        ClaudeFetcher(cfg.ClaudeLog),
		refresh.PanelOtherSessions: OtherSessionsFetcher(),
	}
	for _, cp := range cfg.CustomPanels {
		m[refresh.PanelName(cp.Name)] = CustomFetcher(cp.Command, cp.Source)
	}
	return m
}
