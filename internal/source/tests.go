package source

import (
	"context"
	"os"
	"sync"

	"github.com/neochoon/agenthud-sub001/internal/testreport"
)

// TestsData is the tests panel payload.
type TestsData struct {
	Found     bool // a results file exists
	Path      string
	Results   testreport.Results
	Delta     testreport.Delta // against the previous fetch
	Outdated  bool             // results recorded against an older commit
	Malformed bool             // negative passed count from a malformed report
}

// TestsFetcher loads and parses the configured results file. It remembers
// the previous summary so consecutive fetches yield a failure delta.
type TestsFetcher struct {
	path string
	head func(ctx context.Context) (string, error)

	mu   sync.Mutex
	prev *testreport.Summary
}

// NewTestsFetcher builds a fetcher for path. head supplies the current
// commit hash for the outdated check; a head error just skips the check.
func NewTestsFetcher(path string, head func(ctx context.Context) (string, error)) *TestsFetcher {
	return &TestsFetcher{path: path, head: head}
}

// Fetch reads and parses the results file. A missing file is a normal state
// (Found stays false); a present-but-invalid file is an error.
func (t *TestsFetcher) Fetch(ctx context.Context) (any, error) {
	raw, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return TestsData{Path: t.path}, nil
	}
	if err != nil {
		return nil, err
	}

	res, err := testreport.Parse(t.path, raw)
	if err != nil {
		return nil, err
	}

	data := TestsData{
		Found:     true,
		Path:      t.path,
		Results:   res,
		Malformed: res.Passed < 0,
	}

	if t.head != nil && res.Hash != "" {
		if head, err := t.head(ctx); err == nil {
			data.Outdated = res.Outdated(head)
		}
	}

	t.mu.Lock()
	if t.prev != nil {
		data.Delta = testreport.CompareFailures(*t.prev, res.Summary)
	}
	prev := res.Summary
	t.prev = &prev
	t.mu.Unlock()

	return data, nil
}
