package source

import (
	"context"
	"strconv"
	"strings"
)

// Commit is one entry of the recent-history list.
type Commit struct {
	Hash    string
	Subject string
	When    string // git's relative date, e.g. "2 hours ago"
}

// GitData is the git panel payload.
type GitData struct {
	Branch    string
	Head      string
	Ahead     int
	Behind    int
	Staged    int
	Unstaged  int
	Untracked int
	Commits   []Commit
}

// Dirty reports whether the working tree has uncommitted changes.
func (d GitData) Dirty() bool {
	return d.Staged > 0 || d.Unstaged > 0 || d.Untracked > 0
}

// GitFetcher reads repository state by shelling out to git.
type GitFetcher struct {
	dir string
}

func NewGitFetcher(dir string) *GitFetcher {
	return &GitFetcher{dir: dir}
}

// Head returns the current HEAD hash. The tests fetcher uses it to flag
// results recorded against an older commit.
func (g *GitFetcher) Head(ctx context.Context) (string, error) {
	return run(ctx, g.dir, "git", "rev-parse", "HEAD")
}

// Fetch gathers branch, upstream divergence, working-tree counts, and recent
// commits. Only the branch lookup is fatal; a missing upstream or an empty
// history are normal states.
func (g *GitFetcher) Fetch(ctx context.Context) (any, error) {
	branch, err := run(ctx, g.dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}
	data := GitData{Branch: branch}

	if head, err := g.Head(ctx); err == nil {
		data.Head = head
	}

	// Output is "<behind>\t<ahead>" relative to the upstream.
	if out, err := run(ctx, g.dir, "git", "rev-list", "--left-right", "--count", "@{upstream}...HEAD"); err == nil {
		if behind, ahead, ok := strings.Cut(out, "\t"); ok {
			data.Behind, _ = strconv.Atoi(strings.TrimSpace(behind))
			data.Ahead, _ = strconv.Atoi(strings.TrimSpace(ahead))
		}
	}

	if out, err := runRaw(ctx, g.dir, "git", "status", "--porcelain"); err == nil {
		countPorcelain(out, &data)
	}

	if out, err := run(ctx, g.dir, "git", "log", "-5", "--pretty=format:%h%x09%s%x09%cr"); err == nil {
		data.Commits = parseGitLog(out)
	}

	return data, nil
}

// countPorcelain tallies "XY path" lines where X is the index state and Y
// the worktree state. A file can count as both staged and unstaged.
func countPorcelain(out string, data *GitData) {
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 2 {
			continue
		}
		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			data.Untracked++
			continue
		}
		if x != ' ' {
			data.Staged++
		}
		if y != ' ' {
			data.Unstaged++
		}
	}
}

func parseGitLog(out string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{Hash: parts[0], Subject: parts[1], When: parts[2]})
	}
	return commits
}
